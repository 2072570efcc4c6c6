package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (user, product, quantity) row awaiting checkout.
// The (user_id, product_id) pair is unique per user.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartLine is a cart item joined with its live product row. The cart listing
// returns it directly; checkout reads the same shape inside the transaction
// (price and stock as of that single read).
type CartLine struct {
	ID        int64           `json:"id"`
	Quantity  int64           `json:"quantity"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  *string         `json:"image_url"`
	Stock     int64           `json:"stock"`
}
