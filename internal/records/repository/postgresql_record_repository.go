// Package repository implements persistence for encrypted records on PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	"github.com/allisson/txvault/internal/database"
	apperrors "github.com/allisson/txvault/internal/errors"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

const recordColumns = `id, party_id, payload_nonce, payload_ct, payload_tag, dek_wrap_nonce, dek_wrapped, dek_wrap_tag, alg, mk_version, created_at`

// PostgreSQLRecordRepository implements Record persistence for PostgreSQL databases.
type PostgreSQLRecordRepository struct {
	db *sql.DB
}

// Create inserts a new record.
func (p *PostgreSQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO records (` + recordColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	env := record.Envelope
	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.PartyID,
		env.PayloadNonce,
		env.PayloadCiphertext,
		env.PayloadTag,
		env.DekWrapNonce,
		env.DekWrapped,
		env.DekWrapTag,
		string(env.Algorithm),
		env.MasterKeyVersion,
		record.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if apperrors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return apperrors.Wrapf(recordsDomain.ErrRecordAlreadyExists, "record %s", record.ID)
		}
		return apperrors.Wrap(err, "failed to create record")
	}
	return nil
}

// Get retrieves a record by id.
func (p *PostgreSQLRecordRepository) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recordColumns + ` FROM records WHERE id = $1`

	record, err := scanPostgreSQLRecord(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}
	return record, nil
}

// List retrieves records ordered by id with offset pagination.
func (p *PostgreSQLRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recordColumns + ` FROM records ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	return collectRows(rows, scanPostgreSQLRecord)
}

// ListAfter retrieves up to limit records with ids greater than cursor.
// UUIDv7 ids sort by creation time, so the walk visits records oldest first.
func (p *PostgreSQLRecordRepository) ListAfter(
	ctx context.Context,
	cursor uuid.UUID,
	limit int,
) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recordColumns + ` FROM records WHERE id > $1 ORDER BY id LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, cursor, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	return collectRows(rows, scanPostgreSQLRecord)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLRecord(row rowScanner) (*recordsDomain.Record, error) {
	var record recordsDomain.Record
	var alg string

	err := row.Scan(
		&record.ID,
		&record.PartyID,
		&record.Envelope.PayloadNonce,
		&record.Envelope.PayloadCiphertext,
		&record.Envelope.PayloadTag,
		&record.Envelope.DekWrapNonce,
		&record.Envelope.DekWrapped,
		&record.Envelope.DekWrapTag,
		&alg,
		&record.Envelope.MasterKeyVersion,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Envelope.Algorithm = cryptoDomain.Algorithm(alg)

	return &record, nil
}

func collectRows(
	rows *sql.Rows,
	scan func(rowScanner) (*recordsDomain.Record, error),
) ([]*recordsDomain.Record, error) {
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*recordsDomain.Record, 0)
	for rows.Next() {
		record, err := scan(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate records")
	}
	return records, nil
}

// NewPostgreSQLRecordRepository creates a new PostgreSQL Record repository instance.
func NewPostgreSQLRecordRepository(db *sql.DB) *PostgreSQLRecordRepository {
	return &PostgreSQLRecordRepository{db: db}
}
