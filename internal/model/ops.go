package model

import (
	"fmt"
	"os"
	"time"
)

// Add creates a new bookmark under name. The path must be an existing
// directory and the name must be free.
func (s *Store) Add(name string, params NewBookmarkParams) error {
	if err := ValidateName(name); err != nil {
		return fmt.Errorf("name %q: %w", name, err)
	}
	if err := ValidateField(params.Path); err != nil {
		return fmt.Errorf("path %q: %w", params.Path, err)
	}
	if err := ValidateField(params.Category); err != nil {
		return fmt.Errorf("category %q: %w", params.Category, err)
	}

	if _, exists := s.Bookmarks[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrNameConflict)
	}

	info, err := os.Stat(params.Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", params.Path, ErrInvalidPath)
	}

	s.Put(name, NewBookmark(params))
	return nil
}

// Rename moves a bookmark to a new name and/or rewrites its category.
// At least one of newName/newCategory must be given. Path, timestamps
// and count are preserved.
func (s *Store) Rename(oldName, newName, newCategory string) error {
	if newName == "" && newCategory == "" {
		return fmt.Errorf("rename needs a new name or category: %w", ErrInvalidArgument)
	}

	b, ok := s.Bookmarks[oldName]
	if !ok {
		return fmt.Errorf("%q: %w", oldName, ErrNotFound)
	}

	if newName != "" && newName != oldName {
		if err := ValidateName(newName); err != nil {
			return fmt.Errorf("name %q: %w", newName, err)
		}
		if _, exists := s.Bookmarks[newName]; exists {
			return fmt.Errorf("%q: %w", newName, ErrNameConflict)
		}
		delete(s.Bookmarks, oldName)
		s.Bookmarks[newName] = b
		oldName = newName
	}

	if newCategory != "" {
		if err := ValidateField(newCategory); err != nil {
			return fmt.Errorf("category %q: %w", newCategory, err)
		}
		b = s.Bookmarks[oldName]
		b.Category = newCategory
		s.Bookmarks[oldName] = b
	}

	return nil
}

// Navigate resolves a bookmark to its path and records the access:
// last-accessed is set to now and the count incremented. The caller is
// responsible for persisting the store before acting on the path.
// The bookmark is not removed when its directory has vanished; cleanup
// is left to the user (see the doctor command).
func (s *Store) Navigate(name string, now time.Time) (string, error) {
	b, ok := s.Bookmarks[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	info, err := os.Stat(b.Path)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%q (%s): %w", name, b.Path, ErrStaleBookmark)
	}

	b.LastAccessed = &now
	b.AccessCount++
	s.Bookmarks[name] = b
	return b.Path, nil
}

// ImportMerge merges foreign bookmarks into the store. Entries whose
// name is already taken or fails validation are skipped.
// Returns the number added and the number skipped.
func (s *Store) ImportMerge(entries map[string]Bookmark) (added, skipped int) {
	for name, b := range entries {
		if ValidateName(name) != nil ||
			ValidateField(b.Path) != nil ||
			ValidateField(b.Category) != nil {
			skipped++
			continue
		}
		if _, exists := s.Bookmarks[name]; exists {
			skipped++
			continue
		}
		if b.Category == "" {
			b.Category = DefaultCategory
		}
		s.Bookmarks[name] = b
		added++
	}
	return added, skipped
}
