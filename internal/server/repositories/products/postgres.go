package products

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

const productColumns = `id, name, description, price, stock, image_url, category, created_at`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Category, &p.CreatedAt)
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p := &models.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE name ILIKE $1 OR description ILIKE $1`

	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO products (name, description, price, stock, image_url, category)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Stock, product.ImageURL, product.Category).
		Scan(&product.ID, &product.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	query :=
		`UPDATE products SET name = $1, description = $2, price = $3, stock = $4, image_url = $5, category = $6
		 WHERE id = $7
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Stock, product.ImageURL, product.Category, product.ID).
		Scan(&product.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
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

func (r *PostgresRepository) DecrementStock(ctx context.Context, id int64, quantity int64) error {
	// The stock >= quantity guard makes the decrement safe even if stock
	// changed between the transactional read and this statement.
	query := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	res, err := r.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return &common.InsufficientStockError{ProductID: id}
	}

	return nil
}
