package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anshul/ecommerce-store/backend/internal/common"
	"github.com/anshul/ecommerce-store/backend/internal/models"
)

// ListProducts returns all products, newest first.
func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, price, image, category, stock, created_at
		 FROM products ORDER BY id DESC`)
	if err != nil {
		return nil, classify("list products", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
			&p.Image, &p.Category, &p.Stock, &p.CreatedAt); err != nil {
			return nil, classify("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list products", err)
	}
	return products, nil
}

// GetProduct returns the product with the given id, or nil.
func (s *PostgresStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, price, image, category, stock, created_at
		 FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get product", err)
	}
	return &p, nil
}

// CreateProduct inserts a product and returns it with its assigned id.
func (s *PostgresStore) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := s.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, image, category, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, name, description, price, image, category, stock, created_at`,
		req.Name, req.Description, req.Price, req.Image, req.Category, req.Stock,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Stock, &p.CreatedAt)
	if err != nil {
		return nil, classify("create product", err)
	}
	return &p, nil
}

// UpdateProduct replaces all mutable fields of the product with the given id.
// Returns common.ErrNotFound when no row matches.
func (s *PostgresStore) UpdateProduct(ctx context.Context, id int64, req models.ProductRequest) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := s.pool.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, image = $5, category = $6, stock = $7
		 WHERE id = $1
		 RETURNING id, name, description, price, image, category, stock, created_at`,
		id, req.Name, req.Description, req.Price, req.Image, req.Category, req.Stock,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Category, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", common.ErrNotFound, id)
		}
		return nil, classify("update product", err)
	}
	return &p, nil
}

// DeleteProduct removes the product with the given id. Returns
// common.ErrNotFound when no row matches.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return classify("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", common.ErrNotFound, id)
	}
	return nil
}
