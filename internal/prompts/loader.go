// Package prompts holds the keyword-extraction prompt templates. Each JSON file
// embedded here maps a prompt name to a template using {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// Set is the parsed content of one prompt file.
type Set map[string]string

var loaded sync.Map // filename -> Set

// Load parses a prompt file once and returns the shared Set.
func Load(filename string) (Set, error) {
	if set, ok := loaded.Load(filename); ok {
		return set.(Set), nil
	}

	data, err := files.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := loaded.LoadOrStore(filename, set)
	return actual.(Set), nil
}

// Get returns the template stored under name in filename.
func Get(filename, name string) (string, error) {
	set, err := Load(filename)
	if err != nil {
		return "", err
	}
	template, ok := set[name]
	if !ok {
		return "", fmt.Errorf("prompt %q not found in %s", name, filename)
	}
	return template, nil
}

// MustGet is Get for prompts the program cannot run without.
func MustGet(filename, name string) string {
	template, err := Get(filename, name)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Name}} placeholders. Placeholders without a value are left as is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for _, name := range slices.Sorted(maps.Keys(data)) {
		pairs = append(pairs, "{{."+name+"}}", data[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Reset drops every parsed file.
func Reset() {
	loaded.Clear()
}
