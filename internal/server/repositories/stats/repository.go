package stats

import (
	"context"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

type Repository interface {
	// Compute aggregates the summary counters directly from the source
	// tables. Revenue excludes canceled orders.
	Compute(ctx context.Context) (*models.Stats, error)

	// Upsert writes the summary into the single stats row. Idempotent.
	Upsert(ctx context.Context, s *models.Stats) error
}
