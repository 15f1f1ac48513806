package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikbrunner/dm/internal/model"
)

// Storage defines the interface for persisting the bookmark store.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// FileStorage implements Storage using a flat pipe-delimited file,
// one bookmark per line.
type FileStorage struct {
	path string
}

// NewFileStorage creates a FileStorage backed by the given file path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path.
func (s *FileStorage) Path() string {
	return s.path
}

// Load reads the store from the backing file. A missing file is treated
// as an empty store and the file is created, so later tooling sees it
// exists. Malformed lines are skipped rather than failing the load.
func (s *FileStorage) Load() (*model.Store, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.createEmpty(); err != nil {
				return nil, err
			}
			return model.NewStore(), nil
		}
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	store := model.NewStore()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		name, b, ok := parseRecord(line)
		if !ok {
			continue
		}
		store.Put(name, b)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	return store, nil
}

// Save serializes the whole store, keys sorted ascending, to a temp
// file in the same directory and atomically renames it over the backing
// file. On any failure the prior file is left untouched.
//
// Atomic replace means a concurrent reader never observes a half-written
// file. It does not prevent lost updates when two invocations
// load-modify-save at once; the last writer wins. Accepted limitation
// for a single-user tool.
func (s *FileStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookmarks-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpPath := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, name := range store.Names() {
		b, _ := store.Get(name)
		if _, err := w.WriteString(encodeRecord(name, b) + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}

func (s *FileStorage) createEmpty() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create store file: %w", err)
	}
	return f.Close()
}

// DefaultStorePath returns the default store path: ~/.config/dm/bookmarks
func DefaultStorePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "dm", "bookmarks"), nil
}
