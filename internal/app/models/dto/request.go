package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
)

var validate = validator.New()

// Validate checks a request struct against its validate tags and converts
// the first failure into an application validation error so handlers can
// treat every malformed form the same way.
func Validate(obj interface{}) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		return apperrors.NewValidationError(formatValidationError(fieldErrors[0]))
	}
	return apperrors.NewValidationError(err.Error())
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

// ListExamsQuery carries the list view's filter and ordering parameters.
type ListExamsQuery struct {
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

// CreateExamRequest is the add-exam form. Title is derived, not supplied.
type CreateExamRequest struct {
	Subject     string `form:"subject" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Time        string `form:"time"`
	Description string `form:"description"`
}

// UpdateExamRequest is the edit-exam form: a full replacement of the
// exam's editable fields, including the title.
type UpdateExamRequest struct {
	Title       string `form:"title" validate:"required"`
	Subject     string `form:"subject" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Time        string `form:"time"`
	Description string `form:"description"`
}

// CreateTaskRequest is the add-task form.
type CreateTaskRequest struct {
	Description string `form:"description" validate:"required"`
	Priority    string `form:"priority" validate:"omitempty,oneof=low medium high"`
}

// CreateFlashcardRequest is the add-flashcard form.
type CreateFlashcardRequest struct {
	Topic   string `form:"topic" validate:"required"`
	Summary string `form:"summary" validate:"required"`
}

// CreateFlashcardFormRequest is the variant posted to /flashcards, where
// the owning exam is chosen in the form rather than the URL.
type CreateFlashcardFormRequest struct {
	ExamID  int64  `form:"exam_id" validate:"required,gt=0"`
	Topic   string `form:"topic" validate:"required"`
	Summary string `form:"summary" validate:"required"`
}
