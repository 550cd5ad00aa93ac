package services

import (
	"errors"

	apperrors "github.com/kishansingy/ielts-backend-sub000/internal/errors"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Scoring errors
	ErrScoreNotFound    = errors.New("score not found for attempt")
	ErrEmptySubmission  = errors.New("submission has no answer paired with a question")
	ErrUnsupportedSkill = errors.New("skill area is not band scored")

	// Reference table errors
	ErrReferenceImport = errors.New("reference tables could not be imported")
)

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrScoreNotFound)
}

// IsValidation reports request problems the caller can fix
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrEmptySubmission) || errors.Is(err, ErrUnsupportedSkill) {
		return true
	}
	var ves ValidationErrors
	if errors.As(err, &ves) {
		return true
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}
