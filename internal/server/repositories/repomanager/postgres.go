package repomanager

import (
	"context"
	"database/sql"

	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/migrations"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/cart"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/orders"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/products"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/stats"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Products(db dbx.DBTX) products.Repository {
	return products.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Cart(db dbx.DBTX) cart.Repository {
	return cart.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Orders(db dbx.DBTX) orders.Repository {
	return orders.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Stats(db dbx.DBTX) stats.Repository {
	return stats.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
