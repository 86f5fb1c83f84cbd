package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/epq-service/internal/circuitbreaker"
	"github.com/guttosm/epq-service/internal/domain/model"
)

// ErrHistoryUnavailable is returned while the history backend is shielded by an open circuit.
var ErrHistoryUnavailable = errors.New("history store unavailable")

// HistoryRepositoryWithCircuitBreaker guards any history backend with a circuit breaker.
type HistoryRepositoryWithCircuitBreaker struct {
	repo           HistoryRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewHistoryRepositoryWithCircuitBreaker wraps repo.
func NewHistoryRepositoryWithCircuitBreaker(repo HistoryRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *HistoryRepositoryWithCircuitBreaker {
	return &HistoryRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Append stores one record.
func (r *HistoryRepositoryWithCircuitBreaker) Append(ctx context.Context, record *model.HistoryRecord) error {
	return historyErr(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Append(ctx, record)
	}))
}

// AppendMany stores several records.
func (r *HistoryRepositoryWithCircuitBreaker) AppendMany(ctx context.Context, records []*model.HistoryRecord) error {
	return historyErr(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.AppendMany(ctx, records)
	}))
}

// List returns history records newest first.
func (r *HistoryRepositoryWithCircuitBreaker) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	var result []*model.HistoryRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, opts)
		return cbErr
	})
	return result, historyErr(err)
}

// Count returns the number of stored records.
func (r *HistoryRepositoryWithCircuitBreaker) Count(ctx context.Context, kind string) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, kind)
		return cbErr
	})
	return result, historyErr(err)
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *HistoryRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func historyErr(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}
	return err
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry. An open circuit drops the entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries. An open circuit drops the batch.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
