// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	recordsDomain "github.com/allisson/txvault/internal/records/domain"
	customValidation "github.com/allisson/txvault/internal/validation"
)

// EncryptRecordRequest contains the parameters for sealing a new record.
type EncryptRecordRequest struct {
	PartyID string          `json:"partyId"`
	Payload json.RawMessage `json:"payload"`
}

// Validate checks if the encrypt record request is valid.
func (r *EncryptRecordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PartyID,
			validation.Required,
			validation.RuneLength(1, recordsDomain.MaxPartyIDLength),
			customValidation.NotBlank,
		),
		validation.Field(&r.Payload,
			validation.Required,
			customValidation.JSONObject,
		),
	)
}
