// Package validation provides custom validation rules for the application.
package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/txvault/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// JSONObject validates that a json.RawMessage holds a JSON object.
var JSONObject = validation.By(func(value any) error {
	raw, ok := value.(json.RawMessage)
	if !ok {
		return validation.NewError("validation_json_object_type", "must be raw JSON")
	}
	if len(raw) == 0 {
		return nil // Let Required handle missing values
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return validation.NewError("validation_json_object", "must be a JSON object")
	}
	return nil
})
