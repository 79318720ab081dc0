package service

import (
	"context"
	"log/slog"

	"github.com/banglakobita/kobita-server/internal/store"
)

// StatsService serves the admin dashboard summary.
type StatsService struct {
	store  store.Store
	logger *slog.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(store store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
	}
}

// ContentStats returns catalog totals across every content kind.
func (s *StatsService) ContentStats(ctx context.Context) (*store.ContentStats, error) {
	return s.store.GetContentStats(ctx)
}
