package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError rejects an operation before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError means a referenced id does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// WriteConflictError means an update affected zero rows: the target row
// vanished between read and write.
type WriteConflictError struct {
	Entity string
	ID     uint
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("%s %d: update affected no rows", e.Entity, e.ID)
}

func NewWriteConflict(entity string, id uint) *WriteConflictError {
	return &WriteConflictError{Entity: entity, ID: id}
}

// CascadeError carries failures from downstream recomputation that happened
// after the primary write committed. The primary write stands; callers
// surface this as a warning, not a hard failure.
type CascadeError struct {
	Op   string
	Errs []error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("%s: %d downstream step(s) failed: %v", e.Op, len(e.Errs), errors.Join(e.Errs...))
}

func (e *CascadeError) Unwrap() []error {
	return e.Errs
}

func NewCascade(op string, errs ...error) *CascadeError {
	return &CascadeError{Op: op, Errs: errs}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsWriteConflict(err error) bool {
	var wc *WriteConflictError
	return errors.As(err, &wc)
}

func IsCascade(err error) bool {
	var ce *CascadeError
	return errors.As(err, &ce)
}
