package models

import "github.com/shopspring/decimal"

// Stats is the single denormalized summary row. It is a cache recomputed
// from the source tables, never the source of truth.
type Stats struct {
	TotalProducts  int64           `json:"total_products"`
	TotalOrders    int64           `json:"total_orders"`
	TotalCustomers int64           `json:"total_customers"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}
