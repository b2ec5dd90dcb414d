package lifecycle

import (
	"errors"
	"fmt"

	"github.com/Hemanth040/farm-management-system/internal/model"
)

// ValidationError reports malformed input: a missing title, an unknown
// enum value in a create request or filter criteria.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a ValidationError (including wrapped errors).
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// InvalidTransitionError reports a transition attempted from a state that
// does not permit it, such as completing an already-completed reminder.
type InvalidTransitionError struct {
	Kind   model.EntityKind
	ID     string
	From   string
	Action string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s %s %s in state %q", e.Action, e.Kind, e.ID, e.From)
}

// IsInvalidTransition checks if an error is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var te InvalidTransitionError
	return errors.As(err, &te)
}

// NotFoundError reports an operation referencing an entity identifier
// absent from the supplied collection.
type NotFoundError struct {
	Kind model.EntityKind
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}
