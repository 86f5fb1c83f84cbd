package repository

import (
	"context"

	"github.com/guttosm/epq-service/internal/domain/model"
)

// HistoryRepositoryInterface defines the append-only optimisation history store.
type HistoryRepositoryInterface interface {
	Append(ctx context.Context, record *model.HistoryRecord) error
	AppendMany(ctx context.Context, records []*model.HistoryRecord) error
	List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error)
	Count(ctx context.Context, kind string) (int64, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
