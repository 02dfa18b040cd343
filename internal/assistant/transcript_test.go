package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanReply(t *testing.T) {
	assert.Equal(t, "Use strong verbs and bullet points", CleanReply("Use **strong** verbs and *bullet* points"))
	assert.Equal(t, "plain", CleanReply("plain"))
	assert.Equal(t, "", CleanReply("***"))
}

func TestNormalizeTranscript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nested quotes and prefix", `"'Transcription: Hello world'"`, "Hello world"},
		{"i heard prefix", "I heard: add Go to my skills", "add Go to my skills"},
		{"case insensitive", "TRANSCRIPTION: hello", "hello"},
		{"both prefixes", "I heard: Transcription: hi", "hi"},
		{"single quotes", "'Hello'", "Hello"},
		{"surrounding space", "  hello world \n", "hello world"},
		{"prefix only in middle", "She said I heard: nothing", "She said I heard: nothing"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTranscript(tt.in))
		})
	}
}
