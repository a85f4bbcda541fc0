// Package journal persists submitted prompts as a JSON array on disk.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one submitted prompt.
type Entry struct {
	Prompt         string    `json:"prompt"`
	FromSuggestion bool      `json:"fromSuggestion"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// File appends entries to a journal on disk. It is safe for concurrent use
// within one process.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a journal backed by path. The file is created on first write.
func Open(path string) *File {
	return &File{path: path}
}

// Path returns the journal location.
func (f *File) Path() string {
	return f.path
}

// Record appends a single entry, stamping SubmittedAt when it is zero.
func (f *File) Record(entry Entry) error {
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = time.Now()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return Append(f.path, entry)
}

// Append adds entries to the journal at path, creating it if necessary.
func Append(path string, newEntries ...Entry) error {
	if len(newEntries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("journal: create dir: %w", err)
	}
	entries, err := Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	entries = append(entries, newEntries...)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("journal: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("journal: write %s: %w", path, err)
	}
	return nil
}

// Load returns every entry in the journal, oldest first.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("journal: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("journal: parse %s: %w", path, err)
	}
	return entries, nil
}
