// Package config provides configuration loading and validation for the CLI.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Store backends
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// DefaultPort is the port of the local HTTP API
const DefaultPort = 8080

// Config is the merged settings of the config file, the environment and the
// command line. Every field is optional; Validate checks the combination.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty" validate:"omitempty,oneof=file memory postgres"`
	StoreDir    string `json:"store_dir,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" validate:"required_if=Store postgres"`

	// Assistant
	APIKey             string `json:"api_key,omitempty"`                                      // Gemini API key
	ChatEndpoint       string `json:"chat_endpoint,omitempty" validate:"omitempty,url"`       // Remote /api/chat; empty calls Gemini directly
	TranscribeEndpoint string `json:"transcribe_endpoint,omitempty" validate:"omitempty,url"` // Remote /api/transcribe
	AudioDir           string `json:"audio_dir,omitempty" validate:"omitempty,dir"`           // Clips replayed by /mic dictation

	// Export
	Template        string `json:"template,omitempty" validate:"omitempty,file"` // html/template export layout
	ChromePath      string `json:"chrome_path,omitempty"`
	ExportDir       string `json:"export_dir,omitempty"`
	ExportBucket    string `json:"export_bucket,omitempty"`
	ExportRegion    string `json:"export_region,omitempty"`
	ExportPrefix    string `json:"export_prefix,omitempty" validate:"excluded_without=ExportBucket"`
	ExportEndpoint  string `json:"export_endpoint,omitempty" validate:"omitempty,excluded_without=ExportBucket,url"` // S3-compatible endpoint (MinIO)
	ExportAccessKey string `json:"-"`                                                                                // Static S3 credentials, environment only
	ExportSecretKey string `json:"-"`

	// Server
	Port int `json:"port,omitempty" validate:"min=0,max=65535"`

	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig reads a JSON config file. Unknown keys are rejected so a typo
// does not silently fall back to a default.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", abs, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// configValidator reports fields by their JSON key
func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks that the configured values fit together. Only the first
// problem is reported.
func (c *Config) Validate() error {
	err := configValidator().Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return fmt.Errorf("config error: %s", describe(fieldErrs[0]))
}

// describe turns a failed rule into a message naming the config key
func describe(fe validator.FieldError) string {
	key := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("'%s' must be one of %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "required_if":
		return fmt.Sprintf("'%s' is required for the postgres store", key)
	case "min", "max":
		return fmt.Sprintf("'%s' must be between 0 and 65535", key)
	case "excluded_without":
		return fmt.Sprintf("'%s' requires 'export_bucket'", key)
	case "url":
		return fmt.Sprintf("'%s' must be an absolute URL", key)
	case "file":
		return fmt.Sprintf("template file not found: %v", fe.Value())
	case "dir":
		return fmt.Sprintf("audio directory not found: %v", fe.Value())
	default:
		return fmt.Sprintf("'%s' failed %s", key, fe.Tag())
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(field *string, fallback string) {
		if *field == "" {
			*field = fallback
		}
	}
	fill(&result.Store, defaults.Store)
	fill(&result.StoreDir, defaults.StoreDir)
	fill(&result.DatabaseURL, defaults.DatabaseURL)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.ChatEndpoint, defaults.ChatEndpoint)
	fill(&result.TranscribeEndpoint, defaults.TranscribeEndpoint)
	fill(&result.AudioDir, defaults.AudioDir)
	fill(&result.Template, defaults.Template)
	fill(&result.ChromePath, defaults.ChromePath)
	fill(&result.ExportDir, defaults.ExportDir)
	fill(&result.ExportBucket, defaults.ExportBucket)
	fill(&result.ExportRegion, defaults.ExportRegion)
	fill(&result.ExportPrefix, defaults.ExportPrefix)
	fill(&result.ExportEndpoint, defaults.ExportEndpoint)
	fill(&result.ExportAccessKey, defaults.ExportAccessKey)
	fill(&result.ExportSecretKey, defaults.ExportSecretKey)

	if result.Store == "" {
		result.Store = StoreFile
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv returns the settings found in the environment, for use as defaults
func FromEnv() Config {
	return Config{
		Store:              os.Getenv("RESUME_STORE"),
		StoreDir:           os.Getenv("RESUME_STORE_DIR"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		APIKey:             os.Getenv("GEMINI_API_KEY"),
		ChatEndpoint:       os.Getenv("CHAT_ENDPOINT"),
		TranscribeEndpoint: os.Getenv("TRANSCRIBE_ENDPOINT"),
		ChromePath:         os.Getenv("CHROME_PATH"),
		ExportDir:          os.Getenv("EXPORT_DIR"),
		ExportBucket:       os.Getenv("EXPORT_BUCKET"),
		ExportRegion:       os.Getenv("AWS_REGION"),
		ExportEndpoint:     os.Getenv("EXPORT_ENDPOINT"),
		ExportAccessKey:    os.Getenv("EXPORT_ACCESS_KEY"),
		ExportSecretKey:    os.Getenv("EXPORT_SECRET_KEY"),
	}
}
