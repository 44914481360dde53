// Package mocks provides testify mocks for the records use case layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRecordUseCase is a mock implementation of RecordUseCase.
type MockRecordUseCase struct {
	mock.Mock
}

// NewMockRecordUseCase creates a MockRecordUseCase whose expectations are asserted on cleanup.
func NewMockRecordUseCase(t testingT) *MockRecordUseCase {
	m := &MockRecordUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecordUseCase) Encrypt(
	ctx context.Context,
	partyID string,
	payload []byte,
) (*recordsDomain.Record, error) {
	args := m.Called(ctx, partyID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *MockRecordUseCase) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *MockRecordUseCase) Decrypt(ctx context.Context, id uuid.UUID) (*recordsDomain.DecryptedRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.DecryptedRecord), args.Error(1)
}

func (m *MockRecordUseCase) List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

func (m *MockRecordUseCase) Verify(ctx context.Context, concurrency int) (*recordsDomain.VerifyReport, error) {
	args := m.Called(ctx, concurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.VerifyReport), args.Error(1)
}

// MockRecordRepository is a mock implementation of RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

// NewMockRecordRepository creates a MockRecordRepository whose expectations are asserted on cleanup.
func NewMockRecordRepository(t testingT) *MockRecordRepository {
	m := &MockRecordRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRecordRepository) Create(ctx context.Context, record *recordsDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recordsDomain.Record), args.Error(1)
}

func (m *MockRecordRepository) List(ctx context.Context, offset, limit int) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

func (m *MockRecordRepository) ListAfter(
	ctx context.Context,
	cursor uuid.UUID,
	limit int,
) ([]*recordsDomain.Record, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recordsDomain.Record), args.Error(1)
}

// MockEnvelopeSealer is a mock implementation of EnvelopeSealer.
type MockEnvelopeSealer struct {
	mock.Mock
}

// NewMockEnvelopeSealer creates a MockEnvelopeSealer whose expectations are asserted on cleanup.
func NewMockEnvelopeSealer(t testingT) *MockEnvelopeSealer {
	m := &MockEnvelopeSealer{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEnvelopeSealer) Seal(
	masterKey *cryptoDomain.MasterKey,
	payload []byte,
	metadata cryptoDomain.Metadata,
) (cryptoDomain.Envelope, error) {
	args := m.Called(masterKey, payload, metadata)
	return args.Get(0).(cryptoDomain.Envelope), args.Error(1)
}

func (m *MockEnvelopeSealer) Open(
	masterKey *cryptoDomain.MasterKey,
	envelope cryptoDomain.Envelope,
) ([]byte, cryptoDomain.Metadata, error) {
	args := m.Called(masterKey, envelope)
	var payload []byte
	if args.Get(0) != nil {
		payload = args.Get(0).([]byte)
	}
	var metadata cryptoDomain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(cryptoDomain.Metadata)
	}
	return payload, metadata, args.Error(2)
}

// MockTxManager is a mock implementation of database.TxManager that runs fn
// with the incoming context unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager whose expectations are asserted on cleanup.
func NewMockTxManager(t testingT) *MockTxManager {
	m := &MockTxManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
