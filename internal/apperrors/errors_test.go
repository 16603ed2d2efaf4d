package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	validation := NewValidation("milestone_name", "required")
	notFound := NewNotFound("milestone", 7)
	conflict := NewWriteConflict("unit", 3)
	cascade := NewCascade("payment fan-out", errors.New("boom"))

	if !IsValidation(validation) || IsValidation(notFound) {
		t.Error("IsValidation misclassified")
	}
	if !IsNotFound(notFound) || IsNotFound(validation) {
		t.Error("IsNotFound misclassified")
	}
	if !IsWriteConflict(conflict) || IsWriteConflict(cascade) {
		t.Error("IsWriteConflict misclassified")
	}
	if !IsCascade(cascade) || IsCascade(conflict) {
		t.Error("IsCascade misclassified")
	}
}

func TestClassificationThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("update milestone: %w", NewNotFound("milestone", 7))
	if !IsNotFound(wrapped) {
		t.Error("NotFoundError not detected through wrapping")
	}

	cascade := NewCascade("fan-out", fmt.Errorf("unit 3: %w", NewWriteConflict("customer schedule", 9)))
	if !IsWriteConflict(cascade) {
		t.Error("WriteConflictError not detected inside CascadeError")
	}
}
