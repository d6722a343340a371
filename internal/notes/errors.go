package notes

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrEmptyID      = errors.New("note id empty")
	ErrDuplicateID  = errors.New("note with the same id already exists")
	ErrPersist      = errors.New("persist notes")
	ErrCorruptData  = errors.New("corrupt notes data")
	ErrEmptyContent = &ValidationError{Field: "content", Reason: "content cannot be empty"}
)

// ValidationError is returned by the editor when a draft cannot be saved.
// The store is never touched when a ValidationError is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid note %s: %s", e.Field, e.Reason)
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
