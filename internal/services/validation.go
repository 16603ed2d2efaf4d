package services

import (
	"strings"

	"estate_manager/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

// validateStruct checks `validate` tags and converts the first failure into
// the service-level validation error, so nothing is persisted for bad input.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidation(strings.ToLower(fe.Field()), "failed on '"+fe.Tag()+"'")
	}
	return apperrors.NewValidation("", err.Error())
}
