package products

import (
	"context"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) error

	// DecrementStock subtracts quantity from the product's stock, guarded so
	// stock can never go negative. Discovering insufficient stock here (a
	// late stock race) returns *common.InsufficientStockError.
	DecrementStock(ctx context.Context, id int64, quantity int64) error
}
