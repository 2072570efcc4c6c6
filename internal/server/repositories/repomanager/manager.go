// Package repomanager builds repositories over a shared database handle.
// Repositories are constructed over dbx.DBTX, so the same factory serves
// plain connections and transactions alike.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/cart"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/orders"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/products"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/stats"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	Cart(db dbx.DBTX) cart.Repository
	Orders(db dbx.DBTX) orders.Repository
	Stats(db dbx.DBTX) stats.Repository
}
