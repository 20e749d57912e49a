package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Entity errors
	ErrExamNotFound      = errors.New("exam not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrNoteNotFound      = errors.New("note not found")
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Upload errors
var (
	ErrNoFileProvided   = errors.New("no file selected")
	ErrUnsupportedMedia = errors.New("unsupported file type")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrStorageFailed    = errors.New("file storage operation failed")
)

// Is returns whether target matches err, or whether any of the errors in errList do.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err is any of the entity not-found errors.
func IsNotFound(err error) bool {
	return Is(err, ErrResourceNotFound,
		ErrExamNotFound, ErrTaskNotFound, ErrNoteNotFound, ErrFlashcardNotFound)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a new custom error for a failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewStorageError creates a new custom error for a filesystem failure with a message
func NewStorageError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrStorageFailed, err),
		Message: message,
	}
}
