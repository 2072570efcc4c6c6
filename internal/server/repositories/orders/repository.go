package orders

import (
	"context"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// Create inserts an order header and returns it with the store-assigned
	// id and timestamps.
	Create(ctx context.Context, userID int64, total decimal.Decimal, status models.OrderStatus) (*models.Order, error)

	// AddItem records one immutable order line with the price frozen at
	// purchase time.
	AddItem(ctx context.Context, orderID int64, item models.OrderItem) error

	// ListForUser returns the user's orders, newest first, each with its
	// items annotated with product name and image.
	ListForUser(ctx context.Context, userID int64) ([]models.Order, error)

	// GetForUser returns one of the user's orders with its items.
	GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error)

	// ListAll returns every order with customer identity and items, newest
	// first. Admin reporting only.
	ListAll(ctx context.Context) ([]models.Order, error)

	// UpdateStatus sets the status and bumps updated_at.
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)
}
