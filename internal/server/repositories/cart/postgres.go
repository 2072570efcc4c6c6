package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RaivoMihlenovs/capstone-project/internal/common"
	"github.com/RaivoMihlenovs/capstone-project/internal/dbx"
	"github.com/RaivoMihlenovs/capstone-project/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const linesQuery = `
	SELECT ci.id, ci.quantity, p.id, p.name, p.price, p.image_url, p.stock
	FROM cart_items ci
	JOIN products p ON ci.product_id = p.id
	WHERE ci.user_id = $1
	ORDER BY ci.id`

func (r *PostgresRepository) queryLines(ctx context.Context, query string, userID int64) ([]models.CartLine, error) {
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		if err := rows.Scan(&l.ID, &l.Quantity, &l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Stock); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	return r.queryLines(ctx, linesQuery, userID)
}

func (r *PostgresRepository) LinesForUpdate(ctx context.Context, userID int64) ([]models.CartLine, error) {
	// Locks the product rows so a concurrent checkout against the same
	// product serializes behind this transaction.
	return r.queryLines(ctx, linesQuery+`
	FOR UPDATE OF p`, userID)
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID, quantity int64) (*models.CartItem, error) {
	query :=
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		 RETURNING id, user_id, product_id, quantity, created_at
		 `

	item := &models.CartItem{}
	err := r.db.QueryRowContext(ctx, query, userID, productID, quantity).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, userID, itemID, quantity int64) (*models.CartItem, error) {
	query :=
		`UPDATE cart_items SET quantity = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, product_id, quantity, created_at
		 `

	item := &models.CartItem{}
	err := r.db.QueryRowContext(ctx, query, quantity, itemID, userID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, itemID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
