package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	"github.com/allisson/txvault/internal/database"
	apperrors "github.com/allisson/txvault/internal/errors"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

// mysqlDuplicateEntry is the server error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLRecordRepository implements Record persistence for MySQL databases.
// Ids are stored as BINARY(16).
type MySQLRecordRepository struct {
	db *sql.DB
}

// Create inserts a new record.
func (m *MySQLRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO records (` + recordColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal record id")
	}

	env := record.Envelope
	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
		var mysqlErr *mysql.MySQLError
		if apperrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperrors.Wrapf(recordsDomain.ErrRecordAlreadyExists, "record %s", record.ID)
		}
		return apperrors.Wrap(err, "failed to create record")
	}
	return nil
}

// Get retrieves a record by id.
func (m *MySQLRecordRepository) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	binID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal record id")
	}

	query := `SELECT ` + recordColumns + ` FROM records WHERE id = ?`

	record, err := scanMySQLRecord(querier.QueryRowContext(ctx, query, binID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordsDomain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get record")
	}
	return record, nil
}

// List retrieves records ordered by id with offset pagination.
func (m *MySQLRecordRepository) List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + recordColumns + ` FROM records ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	return collectRows(rows, scanMySQLRecord)
}

// ListAfter retrieves up to limit records with ids greater than cursor.
func (m *MySQLRecordRepository) ListAfter(
	ctx context.Context,
	cursor uuid.UUID,
	limit int,
) ([]*recordsDomain.Record, error) {
	querier := database.GetTx(ctx, m.db)

	binCursor, err := cursor.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal cursor")
	}

	query := `SELECT ` + recordColumns + ` FROM records WHERE id > ? ORDER BY id LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, binCursor, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list records")
	}
	return collectRows(rows, scanMySQLRecord)
}

func scanMySQLRecord(row rowScanner) (*recordsDomain.Record, error) {
	var record recordsDomain.Record
	var id []byte
	var alg string

	err := row.Scan(
		&id,
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

	if err := record.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal record id")
	}
	record.Envelope.Algorithm = cryptoDomain.Algorithm(alg)

	return &record, nil
}

// NewMySQLRecordRepository creates a new MySQL Record repository instance.
func NewMySQLRecordRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db}
}
