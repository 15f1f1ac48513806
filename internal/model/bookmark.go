package model

import (
	"strings"
	"time"
)

// DefaultCategory is assigned when no category is given.
const DefaultCategory = "general"

// Bookmark represents a saved directory with usage metadata.
type Bookmark struct {
	Path         string
	Category     string
	LastAccessed *time.Time // nil = never navigated to
	AccessCount  int
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Path     string
	Category string
}

// NewBookmark creates a Bookmark that has never been navigated to.
func NewBookmark(params NewBookmarkParams) Bookmark {
	category := params.Category
	if category == "" {
		category = DefaultCategory
	}

	return Bookmark{
		Path:        params.Path,
		Category:    category,
		AccessCount: 0,
	}
}

// ValidateField checks a free-form field for the record format.
// The store file is pipe-delimited and line-oriented, so a `|` or a
// newline in any field corrupts the record on the next load.
func ValidateField(value string) error {
	if strings.ContainsAny(value, "|\n") {
		return ErrInvalidArgument
	}
	return nil
}

// ValidateName checks a bookmark name: non-empty and delimiter-free.
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidArgument
	}
	return ValidateField(name)
}
