// Package usecase implements the business logic for encrypted transaction records:
// sealing payloads on write, opening them on read and sweeping stored records for
// integrity failures.
package usecase

import (
	"context"

	"github.com/google/uuid"

	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

// RecordRepository defines the interface for Record persistence operations.
type RecordRepository interface {
	Create(ctx context.Context, record *recordsDomain.Record) error
	Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error)
	List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error)
	// ListAfter returns up to limit records with ids greater than cursor, ordered by id.
	ListAfter(ctx context.Context, cursor uuid.UUID, limit int) ([]*recordsDomain.Record, error)
}

// RecordUseCase defines the interface for record business logic.
type RecordUseCase interface {
	// Encrypt seals payload for partyID and persists the resulting record.
	Encrypt(ctx context.Context, partyID string, payload []byte) (*recordsDomain.Record, error)
	// Get returns the stored record without decrypting it.
	Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error)
	// Decrypt opens the record. The returned payload is plaintext and must be
	// zeroed by the caller after use.
	Decrypt(ctx context.Context, id uuid.UUID) (*recordsDomain.DecryptedRecord, error)
	List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error)
	// Verify opens every stored record and reports those that fail.
	Verify(ctx context.Context, concurrency int) (*recordsDomain.VerifyReport, error)
}
