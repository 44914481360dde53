package validation

import (
	"encoding/base64"
	"encoding/hex"

	validation "github.com/jellydator/validation"
)

// Base64 validates that a string is valid base64-encoded data.
var Base64 = validation.By(func(value any) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// HexKey validates a hex string that decodes to exactly size bytes.
func HexKey(size int) validation.Rule {
	return validation.By(func(value any) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_hex_type", "must be a string")
		}
		if s == "" {
			return nil // Let Required handle empty strings
		}
		if _, err := hex.DecodeString(s); err != nil {
			return validation.NewError("validation_hex", "must be valid hexadecimal data")
		}
		if len(s) != 2*size {
			return validation.NewError("validation_hex_key_length", "must decode to the expected key size")
		}
		return nil
	})
}
