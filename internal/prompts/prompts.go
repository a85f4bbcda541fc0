// Package prompts holds the fixed list of example prompts cycled through by
// the hero input placeholder.
package prompts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptySet is returned when a prompt source yields no usable entries.
var ErrEmptySet = errors.New("prompts: set is empty")

var defaultEntries = []string{
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, tempor sed do",
	"Lorem ipsum dolor sit amet, consectetur elit",
	"Lorem ipsum dolor sit amet, consectetur do eiusmod tempor incididunt ut labore",
	"Lorem ipsum dolor sit amet, consectetur sed do eiusmod tempor",
}

// Set is an ordered, immutable sequence of prompts. The zero value is empty;
// build one with New, Default or Load.
type Set struct {
	entries []string
}

// Default returns the built-in prompt set.
func Default() Set {
	return Set{entries: append([]string(nil), defaultEntries...)}
}

// New validates entries and returns a Set that owns a copy of them.
// Surrounding whitespace is trimmed and blank entries are dropped.
func New(entries []string) (Set, error) {
	cleaned := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	if len(cleaned) == 0 {
		return Set{}, ErrEmptySet
	}
	return Set{entries: cleaned}, nil
}

// Len reports the number of prompts.
func (s Set) Len() int {
	return len(s.entries)
}

// At returns the prompt at i, wrapping modulo Len. It returns "" for an
// empty set.
func (s Set) At(i int) string {
	n := len(s.entries)
	if n == 0 {
		return ""
	}
	i %= n
	if i < 0 {
		i += n
	}
	return s.entries[i]
}

// Entries returns a copy of the prompts.
func (s Set) Entries() []string {
	return append([]string(nil), s.entries...)
}

type promptFile struct {
	Prompts []string `json:"prompts" yaml:"prompts"`
}

// Load reads a prompt set from a YAML or JSON file. Both a bare list and an
// object with a "prompts" key are accepted.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("prompts: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Set{}, ErrEmptySet
	}
	entries, err := decode(filepath.Ext(path), data)
	if err != nil {
		return Set{}, fmt.Errorf("prompts: parse %s: %w", path, err)
	}
	return New(entries)
}

func decode(ext string, data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if strings.EqualFold(ext, ".json") {
		if trimmed[0] == '[' {
			var list []string
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, err
			}
			return list, nil
		}
		var file promptFile
		if err := json.Unmarshal(trimmed, &file); err != nil {
			return nil, err
		}
		return file.Prompts, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var list []string
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var file promptFile
	if err := root.Decode(&file); err != nil {
		return nil, err
	}
	return file.Prompts, nil
}
