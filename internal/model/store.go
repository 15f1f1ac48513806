package model

import "sort"

// Store holds all bookmarks, keyed by name. Names are unique and
// case-sensitive. Each command invocation loads a fresh Store from disk,
// applies at most one mutation, and persists it back.
type Store struct {
	Bookmarks map[string]Bookmark
}

// NewStore creates an empty Store with an initialized map.
func NewStore() *Store {
	return &Store{
		Bookmarks: map[string]Bookmark{},
	}
}

// Get returns the bookmark for a name, if present.
func (s *Store) Get(name string) (Bookmark, bool) {
	b, ok := s.Bookmarks[name]
	return b, ok
}

// Put inserts or overwrites the bookmark for a name.
func (s *Store) Put(name string, b Bookmark) {
	s.Bookmarks[name] = b
}

// Delete removes the bookmark for a name. Reports whether it existed.
func (s *Store) Delete(name string) bool {
	_, ok := s.Bookmarks[name]
	if ok {
		delete(s.Bookmarks, name)
	}
	return ok
}

// Names returns all bookmark names sorted lexicographically ascending.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Bookmarks))
	for name := range s.Bookmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.Bookmarks)
}

// Clear removes every bookmark. Returns the number removed.
func (s *Store) Clear() int {
	n := len(s.Bookmarks)
	s.Bookmarks = map[string]Bookmark{}
	return n
}
