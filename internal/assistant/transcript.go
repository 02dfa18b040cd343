package assistant

import "strings"

var transcriptPrefixes = []string{"I heard:", "Transcription:"}

// CleanReply removes markdown emphasis markers from a model reply
func CleanReply(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	return strings.ReplaceAll(text, "*", "")
}

// NormalizeTranscript strips surrounding quotes and the "I heard:" and
// "Transcription:" lead-ins some models prepend, then trims whitespace
func NormalizeTranscript(text string) string {
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	for _, prefix := range transcriptPrefixes {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimLeft(text[len(prefix):], " ")
		}
	}
	return strings.TrimSpace(text)
}
