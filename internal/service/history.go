package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/metrics"
	"github.com/guttosm/epq-service/internal/repository"
)

// ErrHistoryDisabled is returned by reads when no history backend is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// HistoryService records successful optimisations and lists them back.
type HistoryService interface {
	Record(ctx context.Context, requestID string, params model.CostParameters, result model.OptimizationResult) error
	RecordPortfolio(ctx context.Context, requestID string, items []model.PortfolioItem, result model.PortfolioResult) error
	List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error)
	Count(ctx context.Context, kind string) (int64, error)
}

// HistoryServiceImpl writes history through a repository.
// A nil repository turns writes into no-ops.
type HistoryServiceImpl struct {
	repo    repository.HistoryRepositoryInterface
	backend string
}

// NewHistoryService creates a history service; backend labels metrics and logs.
func NewHistoryService(repo repository.HistoryRepositoryInterface, backend string) *HistoryServiceImpl {
	return &HistoryServiceImpl{repo: repo, backend: backend}
}

// Record appends one single-optimisation row.
func (s *HistoryServiceImpl) Record(ctx context.Context, requestID string, params model.CostParameters, result model.OptimizationResult) error {
	if s.repo == nil {
		return nil
	}
	rec := model.NewHistoryRecord(model.HistoryKindSingle, "", requestID, params, result)
	return s.observe(s.repo.Append(ctx, rec), 1)
}

// RecordPortfolio appends one row per portfolio item, labelled with the item name.
// result.Items must be in the same order as items.
func (s *HistoryServiceImpl) RecordPortfolio(ctx context.Context, requestID string, items []model.PortfolioItem, result model.PortfolioResult) error {
	if s.repo == nil || len(result.Items) == 0 {
		return nil
	}

	records := make([]*model.HistoryRecord, 0, len(result.Items))
	for i, r := range result.Items {
		var p model.CostParameters
		if i < len(items) {
			p = items[i].Parameters
		}
		records = append(records, model.NewHistoryRecord(model.HistoryKindPortfolio, r.Name, requestID, p, r.Result))
	}
	return s.observe(s.repo.AppendMany(ctx, records), len(records))
}

// List returns history rows, newest first.
func (s *HistoryServiceImpl) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	records, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*model.HistoryRecord{}
	}
	return records, nil
}

// Count returns the number of stored rows, optionally of one kind.
func (s *HistoryServiceImpl) Count(ctx context.Context, kind string) (int64, error) {
	if s.repo == nil {
		return 0, ErrHistoryDisabled
	}
	return s.repo.Count(ctx, kind)
}

func (s *HistoryServiceImpl) observe(err error, rows int) error {
	if err != nil {
		metrics.RecordHistoryWrite(s.backend, "error")
		log.Warn().Err(err).Str("backend", s.backend).Int("rows", rows).Msg("Failed to append optimisation history")
		return err
	}
	metrics.RecordHistoryWrite(s.backend, "success")
	return nil
}
