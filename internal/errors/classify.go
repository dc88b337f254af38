package errors

import "errors"

// Severity indicates how a failed operation should be presented to the caller.
type Severity int

const (
	SeverityInfo  Severity = iota // User should know, not blocking
	SeverityError                 // Operation failed, can retry with corrected input
	SeverityFatal                 // Store or filesystem problem, operational alert
)

// OpError wraps an error with caller-facing presentation metadata so that
// "not found" outcomes stay distinguishable from system failures.
type OpError struct {
	Err      error
	Severity Severity
	Title    string   // Short caller-facing title
	Message  string   // Detailed caller-facing message
	Recovery []string // Suggested corrective actions
	Details  string   // Technical details
}

func (e OpError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

// Unwrap returns the underlying error.
func (e OpError) Unwrap() error {
	return e.Err
}

// Classify converts a storage error into an OpError with appropriate
// severity, title, message, and recovery suggestions.
func Classify(err error) *OpError {
	if err == nil {
		return nil
	}

	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr
	}

	switch {
	case errors.Is(err, ErrCollectionNotFound):
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Collection Not Found",
			Message:  "No collection exists with that id.",
			Recovery: []string{"List collections and retry with a valid id"},
		}

	case errors.Is(err, ErrFolderNotFound):
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Folder Not Found",
			Message:  "The folder does not exist in that collection.",
			Recovery: []string{"Fetch the collection and retry with a folder it contains"},
		}

	case errors.Is(err, ErrRequestNotFound):
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Request Not Found",
			Message:  "The request does not exist in that collection.",
			Recovery: []string{"Fetch the collection and retry with a request it contains"},
		}

	case errors.Is(err, ErrEnvironmentNotFound):
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Environment Not Found",
			Message:  "The collection has no environment.",
			Recovery: []string{"Fetch the collection to recreate its base environment"},
		}
	}

	var cycleErr CycleError
	if errors.As(err, &cycleErr) {
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Folder Cycle",
			Message:  "Moving the folder there would make it its own ancestor.",
			Recovery: []string{"Choose a parent outside the folder's own subtree"},
			Details:  cycleErr.Error(),
		}
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return &OpError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  validationErr.Message,
			Recovery: []string{"Correct the field value and try again"},
			Details:  validationErr.Error(),
		}
	}

	var corruptErr *CorruptStoreError
	if errors.As(err, &corruptErr) {
		return &OpError{
			Err:      err,
			Severity: SeverityFatal,
			Title:    "Corrupt Data File",
			Message:  "A line in a data file is not valid JSON.",
			Recovery: []string{
				"Inspect the file at the reported line",
				"Restore the file from a backup",
			},
			Details: corruptErr.Error(),
		}
	}

	var fsErr *FileSystemError
	if errors.As(err, &fsErr) {
		return &OpError{
			Err:      err,
			Severity: SeverityFatal,
			Title:    "Storage Failure",
			Message:  "Reading or writing the data directory failed.",
			Recovery: []string{
				"Check permissions on the data directory",
				"Check available disk space",
			},
			Details: fsErr.Error(),
		}
	}

	// Default fallback for unknown errors
	return &OpError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}
