package dto

import (
	"encoding/json"
	"time"

	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

// RecordResponse represents a stored record in API responses. It carries only
// the hex-encoded envelope fields, never plaintext.
type RecordResponse struct {
	ID           string    `json:"id"`
	PartyID      string    `json:"partyId"`
	PayloadNonce string    `json:"payload_nonce"`
	PayloadCT    string    `json:"payload_ct"`
	PayloadTag   string    `json:"payload_tag"`
	DekWrapNonce string    `json:"dek_wrap_nonce"`
	DekWrapped   string    `json:"dek_wrapped"`
	DekWrapTag   string    `json:"dek_wrap_tag"`
	Alg          string    `json:"alg"`
	MkVersion    uint      `json:"mk_version"`
	CreatedAt    time.Time `json:"created_at"`
}

// DecryptRecordResponse represents an opened record.
// SECURITY: Payload is plaintext; the handler zeroes the source buffer after writing.
type DecryptRecordResponse struct {
	ID      string          `json:"id"`
	PartyID string          `json:"partyId"`
	Payload json.RawMessage `json:"payload"`
}

// ListRecordsResponse represents a paginated list of records in API responses.
type ListRecordsResponse struct {
	Data []RecordResponse `json:"data"`
}

// MapRecordToResponse converts a domain record to an API response.
func MapRecordToResponse(record *recordsDomain.Record) RecordResponse {
	env := record.Envelope
	return RecordResponse{
		ID:           record.ID.String(),
		PartyID:      record.PartyID,
		PayloadNonce: env.PayloadNonce,
		PayloadCT:    env.PayloadCiphertext,
		PayloadTag:   env.PayloadTag,
		DekWrapNonce: env.DekWrapNonce,
		DekWrapped:   env.DekWrapped,
		DekWrapTag:   env.DekWrapTag,
		Alg:          string(env.Algorithm),
		MkVersion:    env.MasterKeyVersion,
		CreatedAt:    record.CreatedAt,
	}
}

// MapDecryptedRecordToResponse converts an opened record to an API response.
// The payload slice is shared, not copied.
func MapDecryptedRecordToResponse(record *recordsDomain.DecryptedRecord) DecryptRecordResponse {
	return DecryptRecordResponse{
		ID:      record.ID.String(),
		PartyID: record.PartyID,
		Payload: json.RawMessage(record.Payload),
	}
}

// MapRecordsToListResponse converts a slice of domain records to a list response.
func MapRecordsToListResponse(records []*recordsDomain.Record) ListRecordsResponse {
	data := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}

	return ListRecordsResponse{
		Data: data,
	}
}
