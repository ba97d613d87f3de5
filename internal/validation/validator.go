// Package validation validates HTTP request DTOs with validator/v10.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with AppError conversion
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION_ERROR with per-field details
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.Wrap(err, apperrors.CodeValidation, "invalid request")
	}

	fields := make(map[string]any, len(validationErrs))
	for _, e := range validationErrs {
		fields[fieldPath(e)] = friendlyMessage(e)
	}

	return apperrors.New(apperrors.CodeValidation, "validation failed").
		WithDetails(map[string]any{"fields": fields})
}

// fieldPath drops the root struct name, e.g. "primaryTags[0].name"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gtefield":
		return "must be greater than or equal to " + e.Param()
	case "hexcolor":
		return "must be a hex color"
	default:
		return "is invalid"
	}
}
