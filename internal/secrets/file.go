package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/semmy-space/req/internal/lockfile"
)

// FileStore implements the Store interface on a plain JSON object file,
// e.g. {"token": "eyJ..."}. Writes hold the advisory lock for the file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// readStore parses the credential file.
// Returns an empty map if the file doesn't exist.
func (s *FileStore) readStore() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if len(data) == 0 {
		return make(map[string]string), nil
	}

	var store map[string]string
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if store == nil {
		store = make(map[string]string)
	}

	return store, nil
}

// writeStore writes the credential map to disk, removing the file once it is empty.
func (s *FileStore) writeStore(store map[string]string) error {
	if len(store) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove credentials file: %w", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// Get retrieves a credential by key.
func (s *FileStore) Get(key string) (string, error) {
	store, err := s.readStore()
	if err != nil {
		return "", err
	}

	value, ok := store[key]
	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

// Set stores a credential, replacing the previous value.
// An unreadable file is overwritten rather than merged.
func (s *FileStore) Set(key, value string) error {
	return lockfile.With(context.Background(), s.path, func() error {
		store, err := s.readStore()
		if err != nil {
			store = make(map[string]string)
		}

		store[key] = value
		return s.writeStore(store)
	})
}

// Delete removes a credential. The file is deleted when it holds nothing else.
func (s *FileStore) Delete(key string) error {
	return lockfile.With(context.Background(), s.path, func() error {
		store, err := s.readStore()
		if err != nil {
			// Unparsable file: nothing recoverable to keep
			return s.writeStore(nil)
		}

		if _, ok := store[key]; !ok {
			return ErrNotFound
		}

		delete(store, key)
		return s.writeStore(store)
	})
}

// List returns all credential keys.
func (s *FileStore) List() ([]string, error) {
	store, err := s.readStore()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(store))
	for k := range store {
		keys = append(keys, k)
	}

	return keys, nil
}
