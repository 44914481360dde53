// Package domain defines the core domain models for encrypted transaction records.
// A record stores one envelope-encrypted payload next to the party it belongs to.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
)

// PartyIDMetadataKey is the metadata key binding the party identifier into the
// sealed plaintext.
const PartyIDMetadataKey = "partyId"

// Record is a persisted envelope. It never holds plaintext.
type Record struct {
	// ID is a UUIDv7 assigned on creation.
	ID uuid.UUID
	// PartyID is stored in clear for lookups and compared with the sealed copy on decrypt.
	PartyID string
	// Envelope holds the hex-encoded ciphertext fields, alg and mk_version.
	Envelope cryptoDomain.Envelope
	// CreatedAt is the UTC timestamp when the record was created.
	CreatedAt time.Time
}

// DecryptedRecord is the result of opening a record.
//
// Payload is plaintext; callers should zero it once the response is written.
type DecryptedRecord struct {
	ID      uuid.UUID
	PartyID string
	Payload []byte `json:"-"`
}

// VerifyReport summarizes a verification sweep over stored records.
type VerifyReport struct {
	// Checked is the number of records opened.
	Checked int
	// Failed lists the ids of records that failed to open.
	Failed []uuid.UUID
}
