package types

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the notblank rule registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

// Validate validates the achievement fields.
func (a *Achievement) Validate() error {
	return Validator().Struct(a)
}

// Validate validates the work experience fields.
func (w *WorkExperience) Validate() error {
	return Validator().Struct(w)
}

// Validate validates the education fields.
func (e *Education) Validate() error {
	return Validator().Struct(e)
}

// Validate validates the skill fields.
func (s *Skill) Validate() error {
	return Validator().Struct(s)
}

// Validate validates the chat request.
func (r *ChatRequest) Validate() error {
	return Validator().Struct(r)
}
