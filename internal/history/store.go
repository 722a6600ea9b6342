package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/semmy-space/req/internal/lockfile"
)

// Store is an insertion-ordered log of request outcomes
type Store interface {
	LoadAll() []Entry
	Append(ctx context.Context, e Entry) error
	Clear(ctx context.Context) error
	Export(path string) (string, error)
}

// FileStore keeps the whole history as one pretty-printed JSON array.
// Every read re-parses the file; every write rewrites it under an advisory lock.
type FileStore struct {
	path       string
	exportPath string
}

// NewFileStore creates a store backed by path.
// exportPath is the destination used by Export when none is given.
func NewFileStore(path, exportPath string) *FileStore {
	return &FileStore{path: path, exportPath: exportPath}
}

// Path returns the history file
func (s *FileStore) Path() string {
	return s.path
}

// LoadAll returns every entry in append order.
// A missing or malformed file reads as an empty history.
func (s *FileStore) LoadAll() []Entry {
	entries, err := s.read()
	if err != nil {
		return []Entry{}
	}
	return entries
}

func (s *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Append adds e to the end of the history, rewriting the whole file.
func (s *FileStore) Append(ctx context.Context, e Entry) error {
	return lockfile.With(ctx, s.path, func() error {
		entries := s.LoadAll()
		entries = append(entries, e)
		return writeJSON(s.path, entries)
	})
}

// Clear replaces the history with an empty array.
func (s *FileStore) Clear(ctx context.Context) error {
	return lockfile.With(ctx, s.path, func() error {
		return writeJSON(s.path, []Entry{})
	})
}

// Export writes the full, unfiltered history to path and returns the path written.
// An empty path selects the store's default export file.
func (s *FileStore) Export(path string) (string, error) {
	if path == "" {
		path = s.exportPath
	}
	if err := writeJSON(path, s.LoadAll()); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
