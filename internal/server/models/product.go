package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog row. Stock is the one field the checkout flow mutates.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	ImageURL    *string         `json:"image_url"`
	Category    *string         `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}
