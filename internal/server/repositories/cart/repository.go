package cart

import (
	"context"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

// Repository is the per-user cart store. Every operation is scoped to the
// owning user in the query itself, so cross-user access is structurally
// impossible rather than checked after the fact.
type Repository interface {
	// Lines returns the user's cart joined with live product rows.
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)

	// LinesForUpdate is Lines with the joined product rows locked for the
	// duration of the surrounding transaction. Checkout uses it so the stock
	// check and decrement see the same rows.
	LinesForUpdate(ctx context.Context, userID int64) ([]models.CartLine, error)

	// Add inserts a cart line, merging into the existing line's quantity if
	// the product is already in the user's cart.
	Add(ctx context.Context, userID, productID, quantity int64) (*models.CartItem, error)

	UpdateQuantity(ctx context.Context, userID, itemID, quantity int64) (*models.CartItem, error)
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
