package content

import (
	"errors"
	"fmt"
)

// Errors returned by content loading.
var (
	// ErrInvalidContent indicates the tables failed validation.
	ErrInvalidContent = errors.New("invalid content")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("content watcher closed")
)

// ParseError represents an error while parsing a content file.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes one rejected table entry.
type ValidationError struct {
	// Table is the offending table: base, rows, categories or details.
	Table string
	// Key is the row or category name, empty for the flat tables.
	Key string
	// Reason describes the failure.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("content %s[%s]: %s", e.Table, e.Key, e.Reason)
	}
	return fmt.Sprintf("content %s: %s", e.Table, e.Reason)
}

// Unwrap returns ErrInvalidContent.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidContent
}
