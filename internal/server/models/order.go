package models

import (
	"time"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/shopspring/decimal"
)

// OrderStatus is one of the six recognized status literals. There is no
// enforced ordering graph: any status may move to any other recognized one.
type OrderStatus string

const (
	StatusPending         OrderStatus = "Pending"
	StatusConfirmed       OrderStatus = "Confirmed"
	StatusPaymentPending  OrderStatus = "Payment Pending"
	StatusPaymentReceived OrderStatus = "Payment Received"
	StatusDelivered       OrderStatus = "Delivered"
	StatusCanceled        OrderStatus = "Canceled"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:         {},
	StatusConfirmed:       {},
	StatusPaymentPending:  {},
	StatusPaymentReceived: {},
	StatusDelivered:       {},
	StatusCanceled:        {},
}

// ParseOrderStatus validates a status literal coming from a client.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := orderStatuses[st]; !ok {
		return "", &common.InvalidStatusError{Status: s}
	}
	return st, nil
}

// Order is an order header. Once created it is immutable except for Status
// (and the UpdatedAt bump that comes with a status change).
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Items is populated when the order is loaded with its lines.
	Items []OrderItem `json:"items,omitempty"`

	// CustomerEmail and CustomerName are populated only in the admin listing.
	CustomerEmail string `json:"email,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
}

// OrderItem is the immutable record of one product line within a placed
// order. Price is the unit price frozen at purchase time; it must not change
// when the product's price later does. Name and ImageURL are display
// annotations joined from the live product row.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	ImageURL  *string         `json:"image_url"`
}
