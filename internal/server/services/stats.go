package services

import (
	"context"
	"database/sql"

	"github.com/RaivoMihlenovs/capstone-project/internal/logging"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
)

// StatsService maintains the denormalized summary row. The stored row is a
// cache: reads recompute from the source tables first, so it can never be a
// lagging source of truth.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *StatsService {
	return &StatsService{
		db:          db,
		repomanager: m,
		logger:      logger,
	}
}

// Recompute aggregates the counters from the source tables and upserts them
// into the summary row. Recomputing twice with no intervening mutation yields
// identical output.
func (s *StatsService) Recompute(ctx context.Context) (*models.Stats, error) {
	repo := s.repomanager.Stats(s.db)

	stats, err := repo.Compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := repo.Upsert(ctx, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

// Refresh is the hook mutating operations call after they commit. A failed
// refresh is logged and swallowed; it must never fail or roll back the
// triggering operation. The next read self-heals.
func (s *StatsService) Refresh(ctx context.Context) {
	if _, err := s.Recompute(ctx); err != nil {
		s.logger.Error(ctx, "stats refresh failed", "error", err)
	}
}

// Get returns the current summary. The read path always recomputes before
// returning.
func (s *StatsService) Get(ctx context.Context) (*models.Stats, error) {
	return s.Recompute(ctx)
}
