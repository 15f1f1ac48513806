package model

import "errors"

var (
	// ErrInvalidArgument covers missing or malformed command input,
	// including fields that contain the record delimiter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means no bookmark exists under the given name.
	ErrNotFound = errors.New("bookmark not found")

	// ErrNameConflict means the target name is already taken.
	ErrNameConflict = errors.New("bookmark already exists")

	// ErrInvalidPath means the path does not exist or is not a directory
	// at add time.
	ErrInvalidPath = errors.New("not a directory")

	// ErrStaleBookmark means the bookmarked directory has vanished since
	// it was saved. The bookmark is left in place for the user to clean up.
	ErrStaleBookmark = errors.New("bookmarked directory no longer exists")
)
