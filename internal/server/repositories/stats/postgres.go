package stats

import (
	"context"
	"fmt"

	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Compute(ctx context.Context) (*models.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products) AS total_products,
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COUNT(*) FROM users WHERE is_admin = false) AS total_customers,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status != 'Canceled') AS total_revenue`

	s := &models.Stats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.TotalProducts, &s.TotalOrders, &s.TotalCustomers, &s.TotalRevenue)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *models.Stats) error {
	query := `
		INSERT INTO stats (id, total_products, total_orders, total_customers, total_revenue)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			total_products = EXCLUDED.total_products,
			total_orders = EXCLUDED.total_orders,
			total_customers = EXCLUDED.total_customers,
			total_revenue = EXCLUDED.total_revenue,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		s.TotalProducts, s.TotalOrders, s.TotalCustomers, s.TotalRevenue)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
