package usecase

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	cryptoService "github.com/allisson/txvault/internal/crypto/service"
	"github.com/allisson/txvault/internal/database"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

// verifyBatchSize is the number of records fetched per page during Verify.
const verifyBatchSize = 100

// recordUseCase implements the RecordUseCase interface.
type recordUseCase struct {
	txManager  database.TxManager
	recordRepo RecordRepository
	sealer     cryptoService.EnvelopeSealer
	masterKey  *cryptoDomain.MasterKey
}

// Encrypt seals payload bound to partyID under a fresh DEK and stores the record.
func (r *recordUseCase) Encrypt(
	ctx context.Context,
	partyID string,
	payload []byte,
) (*recordsDomain.Record, error) {
	if partyID == "" || utf8.RuneCountInString(partyID) > recordsDomain.MaxPartyIDLength {
		return nil, recordsDomain.ErrInvalidPartyID
	}

	envelope, err := r.sealer.Seal(
		r.masterKey,
		payload,
		cryptoDomain.Metadata{recordsDomain.PartyIDMetadataKey: partyID},
	)
	if err != nil {
		return nil, err
	}

	record := &recordsDomain.Record{
		ID:        uuid.Must(uuid.NewV7()),
		PartyID:   partyID,
		Envelope:  envelope,
		CreatedAt: time.Now().UTC(),
	}

	err = r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return r.recordRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Get returns the stored record.
func (r *recordUseCase) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	return r.recordRepo.Get(ctx, id)
}

// Decrypt loads and opens a record.
func (r *recordUseCase) Decrypt(ctx context.Context, id uuid.UUID) (*recordsDomain.DecryptedRecord, error) {
	record, err := r.recordRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := r.open(record)
	if err != nil {
		return nil, err
	}

	return &recordsDomain.DecryptedRecord{
		ID:      record.ID,
		PartyID: record.PartyID,
		Payload: payload,
	}, nil
}

// open opens the envelope and checks the sealed party identifier against the stored one.
func (r *recordUseCase) open(record *recordsDomain.Record) ([]byte, error) {
	payload, metadata, err := r.sealer.Open(r.masterKey, record.Envelope)
	if err != nil {
		return nil, err
	}

	if metadata[recordsDomain.PartyIDMetadataKey] != record.PartyID {
		cryptoDomain.Zero(payload)
		return nil, cryptoDomain.NewDecryptionError(recordsDomain.ErrPartyMismatch, nil)
	}

	return payload, nil
}

// List returns stored records ordered by id with offset pagination.
func (r *recordUseCase) List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error) {
	return r.recordRepo.List(ctx, offset, limit)
}

// Verify walks every record by id and opens it with at most concurrency records
// in flight. Records that fail to open are reported; repository errors abort the sweep.
func (r *recordUseCase) Verify(ctx context.Context, concurrency int) (*recordsDomain.VerifyReport, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu     sync.Mutex
		report = &recordsDomain.VerifyReport{}
		cursor = uuid.Nil
	)

	for {
		records, err := r.recordRepo.ListAfter(ctx, cursor, verifyBatchSize)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			break
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, record := range records {
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}

				payload, err := r.open(record)
				cryptoDomain.Zero(payload)

				mu.Lock()
				defer mu.Unlock()
				report.Checked++
				if err != nil {
					report.Failed = append(report.Failed, record.ID)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		cursor = records[len(records)-1].ID
		if len(records) < verifyBatchSize {
			break
		}
	}

	slices.SortFunc(report.Failed, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	return report, nil
}

// NewRecordUseCase creates a new record use case instance with the provided dependencies.
func NewRecordUseCase(
	txManager database.TxManager,
	recordRepo RecordRepository,
	sealer cryptoService.EnvelopeSealer,
	masterKey *cryptoDomain.MasterKey,
) RecordUseCase {
	return &recordUseCase{
		txManager:  txManager,
		recordRepo: recordRepo,
		sealer:     sealer,
		masterKey:  masterKey,
	}
}
