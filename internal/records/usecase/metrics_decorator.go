package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/txvault/internal/metrics"
	recordsDomain "github.com/allisson/txvault/internal/records/domain"
)

const metricsDomain = "records"

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *recordUseCaseWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	r.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (r *recordUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	partyID string,
	payload []byte,
) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Encrypt(ctx, partyID, payload)
	r.observe(ctx, "record_encrypt", start, err)
	return record, err
}

func (r *recordUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*recordsDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Get(ctx, id)
	r.observe(ctx, "record_get", start, err)
	return record, err
}

func (r *recordUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	id uuid.UUID,
) (*recordsDomain.DecryptedRecord, error) {
	start := time.Now()
	record, err := r.next.Decrypt(ctx, id)
	r.observe(ctx, "record_decrypt", start, err)
	return record, err
}

func (r *recordUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*recordsDomain.Record, error) {
	start := time.Now()
	records, err := r.next.List(ctx, offset, limit)
	r.observe(ctx, "record_list", start, err)
	return records, err
}

// Verify also counts every record that failed to open as a record_verify_failure error.
func (r *recordUseCaseWithMetrics) Verify(
	ctx context.Context,
	concurrency int,
) (*recordsDomain.VerifyReport, error) {
	start := time.Now()
	report, err := r.next.Verify(ctx, concurrency)
	r.observe(ctx, "record_verify", start, err)

	if report != nil {
		for range report.Failed {
			r.metrics.RecordOperation(ctx, metricsDomain, "record_verify_failure", "error")
		}
	}
	return report, err
}
