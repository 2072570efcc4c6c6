package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, total decimal.Decimal, status models.OrderStatus) (*models.Order, error) {
	query :=
		`INSERT INTO orders (user_id, total_amount, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	order := &models.Order{UserID: userID, TotalAmount: total, Status: status}
	err := r.db.QueryRowContext(ctx, query, userID, total, status).Scan(
		&order.ID, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return order, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, orderID int64, item models.OrderItem) error {
	query :=
		`INSERT INTO order_items (order_id, product_id, quantity, price)
		 VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query, orderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// withItemsQuery returns order headers repeated per item line; scanOrders
// folds them back into orders with item slices. Item columns are nullable
// because an order can, in principle, have no lines left after product
// deletion history.
const withItemsQuery = `
	SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at,
	       oi.product_id, oi.quantity, oi.price, p.name, p.image_url
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id`

const withCustomerQuery = `
	SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at,
	       oi.product_id, oi.quantity, oi.price, p.name, p.image_url,
	       u.email, u.name
	FROM orders o
	JOIN users u ON o.user_id = u.id
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN products p ON p.id = oi.product_id`

func scanOrders(rows *sql.Rows, withCustomer bool) ([]models.Order, error) {
	result := []models.Order{}
	var current *models.Order

	for rows.Next() {
		var o models.Order
		var productID, quantity sql.NullInt64
		var price decimal.NullDecimal
		var name, imageURL sql.NullString

		dest := []any{&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
			&productID, &quantity, &price, &name, &imageURL}
		if withCustomer {
			dest = append(dest, &o.CustomerEmail, &o.CustomerName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if current == nil || current.ID != o.ID {
			result = append(result, o)
			current = &result[len(result)-1]
		}

		if productID.Valid {
			item := models.OrderItem{
				ProductID: productID.Int64,
				Quantity:  quantity.Int64,
				Price:     price.Decimal,
				Name:      name.String,
			}
			if imageURL.Valid {
				item.ImageURL = &imageURL.String
			}
			current.Items = append(current.Items, item)
		}
	}

	return result, rows.Err()
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := withItemsQuery + `
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC, o.id, oi.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, false)
}

func (r *PostgresRepository) GetForUser(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	query := withItemsQuery + `
	WHERE o.id = $1 AND o.user_id = $2
	ORDER BY oi.id`

	rows, err := r.db.QueryContext(ctx, query, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows, false)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, common.ErrNotFound
	}

	return &orders[0], nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := withCustomerQuery + `
	ORDER BY o.created_at DESC, o.id, oi.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows, true)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	query :=
		`UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2
		 RETURNING id, user_id, total_amount, status, created_at, updated_at
		 `

	order := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, status, orderID).Scan(
		&order.ID, &order.UserID, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return order, nil
}
