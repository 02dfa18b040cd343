// Package prompts holds the assistant and transcription prompts. Each
// embedded JSON file maps a prompt key to a text/template body.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var files embed.FS

// prompt is one parsed entry of a prompt file
type prompt struct {
	text string
	tmpl *template.Template
}

var (
	mu     sync.Mutex
	loaded = map[string]map[string]prompt{}
)

// Get returns the raw body of key in filename, e.g. ("assistant.json", "chat-system")
func Get(filename, key string) (string, error) {
	p, err := lookup(filename, key)
	if err != nil {
		return "", err
	}
	return p.text, nil
}

// Render executes the body of key with data. A placeholder data does not
// provide is an error rather than an empty string.
func Render(filename, key string, data any) (string, error) {
	p, err := lookup(filename, key)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := p.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return b.String(), nil
}

// Keys lists the prompt keys of filename in sorted order
func Keys(filename string) ([]string, error) {
	set, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

func lookup(filename, key string) (prompt, error) {
	set, err := load(filename)
	if err != nil {
		return prompt{}, err
	}
	p, ok := set[key]
	if !ok {
		return prompt{}, fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return p, nil
}

// load parses filename once. Every body is parsed as a template up front so
// a broken prompt fails on first use of its file.
func load(filename string) (map[string]prompt, error) {
	mu.Lock()
	defer mu.Unlock()
	if set, ok := loaded[filename]; ok {
		return set, nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var bodies map[string]string
	if err := json.Unmarshal(data, &bodies); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	set := make(map[string]prompt, len(bodies))
	for key, text := range bodies {
		tmpl, err := template.New(filename + "/" + key).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s/%s: %w", filename, key, err)
		}
		set[key] = prompt{text: text, tmpl: tmpl}
	}
	loaded[filename] = set
	return set, nil
}
