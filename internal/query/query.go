// Package query provides pure, read-only views over a loaded store
// snapshot: filtered listings and top-N by recency or frequency.
package query

import (
	"sort"
	"strings"

	"github.com/nikbrunner/dm/internal/model"
)

// DefaultLimit is the result count for recency/frequency views when the
// caller does not override it.
const DefaultLimit = 10

// Entry pairs a bookmark with its name for ordered results.
type Entry struct {
	Name     string
	Bookmark model.Bookmark
}

// Predicate decides whether an entry is included in a filtered listing.
type Predicate func(name string, b model.Bookmark) bool

// ByNameSubstring matches names containing the given word.
func ByNameSubstring(word string) Predicate {
	return func(name string, _ model.Bookmark) bool {
		return strings.Contains(name, word)
	}
}

// ByCategory matches bookmarks with exactly the given category.
func ByCategory(category string) Predicate {
	return func(_ string, b model.Bookmark) bool {
		return b.Category == category
	}
}

// All matches every bookmark.
func All(string, model.Bookmark) bool { return true }

// Filter returns the entries matching pred, sorted by name ascending.
func Filter(store *model.Store, pred Predicate) []Entry {
	var entries []Entry
	for _, name := range store.Names() {
		b, _ := store.Get(name)
		if pred(name, b) {
			entries = append(entries, Entry{Name: name, Bookmark: b})
		}
	}
	return entries
}

// TopByRecency returns up to n entries ordered by last access descending.
// Bookmarks that have never been navigated to are excluded.
func TopByRecency(store *model.Store, n int) []Entry {
	entries := Filter(store, func(_ string, b model.Bookmark) bool {
		return b.LastAccessed != nil
	})

	// Stable on the name-sorted base so ties keep a deterministic order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Bookmark.LastAccessed.After(*entries[j].Bookmark.LastAccessed)
	})

	return truncate(entries, n)
}

// TopByFrequency returns up to n entries ordered by access count
// descending. Never-visited bookmarks count as zero and are eligible.
func TopByFrequency(store *model.Store, n int) []Entry {
	entries := Filter(store, All)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Bookmark.AccessCount > entries[j].Bookmark.AccessCount
	})

	return truncate(entries, n)
}

func truncate(entries []Entry, n int) []Entry {
	if n <= 0 {
		n = DefaultLimit
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
