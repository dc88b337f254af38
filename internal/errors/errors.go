package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookups that fail because the entity is absent or
// belongs to a different collection than the caller named.
var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrEnvironmentNotFound = errors.New("environment not found")
)

// ValidationError represents a field validation failure caught before
// any storage is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// CycleError reports a folder move that would make the folder its own
// ancestor. The move is rejected before anything is written.
type CycleError struct {
	FolderID string
	ParentID string
}

func (e CycleError) Error() string {
	return fmt.Sprintf("moving folder %s under %s would create a cycle", e.FolderID, e.ParentID)
}

// CorruptStoreError reports a data-file line that failed to parse as JSON.
// It is fatal and never skipped: silently dropping a malformed record would
// destroy it on the next whole-file rewrite.
type CorruptStoreError struct {
	Path string
	Line int
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt record at %s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// FileSystemError wraps an I/O failure other than "file does not exist"
// (permissions, disk full). Fatal for the current operation, not retried.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileSystemError) Unwrap() error {
	return e.Err
}
