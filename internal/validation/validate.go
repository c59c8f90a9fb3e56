// Package validation guards the engine's input contracts. Requests that fail
// here are rejected before any scoring runs and surface to the caller as
// client errors, never as partial computations.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InvalidInputError describes a rejected request field
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Validator validates request structs against their declared tags
type Validator struct {
	validate *validator.Validate
}

// New creates a validator
func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct validates a tagged request struct, translating the first violation
// into an InvalidInputError
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &InvalidInputError{
			Field:  fe.Namespace(),
			Reason: describeViolation(fe),
		}
	}
	return &InvalidInputError{Field: "request", Reason: err.Error()}
}

func describeViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// IsInvalidInput reports whether err is an input-contract violation
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
