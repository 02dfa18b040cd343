package editor

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalInfo_UpdatePublishesWholeRecord(t *testing.T) {
	var published []types.PersonalInfo
	ed := NewPersonalInfo(types.PersonalInfo{Name: "Ada"}, func(info types.PersonalInfo) {
		published = append(published, info)
	})

	require.NoError(t, ed.Update(FieldEmail, "ada@example.com"))
	require.NoError(t, ed.Update(FieldGitHub, "ada"))

	require.Len(t, published, 2)
	assert.Equal(t, types.PersonalInfo{Name: "Ada", Email: "ada@example.com", GitHub: "ada"}, published[1])
	assert.Error(t, ed.Update("twitter", "@ada"))
	assert.Len(t, published, 2)
}

func TestParseField(t *testing.T) {
	field, err := ParseField("LinkedIn")
	require.NoError(t, err)
	assert.Equal(t, FieldLinkedIn, field)

	_, err = ParseField("address")
	assert.Error(t, err)
}
