package services

import (
	"context"
	"database/sql"

	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/repositories/repomanager"
	"github.com/RaivoMihlenovs/capstone-project/internal/validate"
)

// CartService manages the per-user cart. Every operation is scoped to the
// calling user; an item id belonging to someone else behaves like a missing
// one.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{
		db:          db,
		repomanager: m,
	}
}

func (s *CartService) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	return s.repomanager.Cart(s.db).Lines(ctx, userID)
}

// Add puts a product in the cart, merging quantities when it is already
// there. An unknown product surfaces as common.ErrNotFound.
func (s *CartService) Add(ctx context.Context, userID int64, in validate.CartItemData) (*models.CartItem, error) {
	return s.repomanager.Cart(s.db).Add(ctx, userID, in.ProductID, in.Quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID, quantity int64) (*models.CartItem, error) {
	return s.repomanager.Cart(s.db).UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.repomanager.Cart(s.db).Remove(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.repomanager.Cart(s.db).Clear(ctx, userID)
}
