package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/jmoiron/sqlx"
)

// ProductRepository stores the catalog as JSON documents in SQLite. It is the
// catalog.Source used by serve and seed.
type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type dataRow struct {
	ID   string `db:"id"`
	Data string `db:"data"`
}

func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, data
		FROM products
		ORDER BY position
	`

	var rows []dataRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		var p domain.Product
		if err := json.Unmarshal([]byte(row.Data), &p); err != nil {
			return nil, fmt.Errorf("failed to decode product %s: %w", row.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *ProductRepository) GetCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	var rows []dataRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, data FROM categories ORDER BY position`); err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories := make([]domain.ProductCategory, 0, len(rows))
	for _, row := range rows {
		var c domain.ProductCategory
		if err := json.Unmarshal([]byte(row.Data), &c); err != nil {
			return nil, fmt.Errorf("failed to decode category %s: %w", row.ID, err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// ReplaceCatalog swaps the stored catalog for the given dataset in one
// transaction, keeping the given order.
func (r *ProductRepository) ReplaceCatalog(ctx context.Context, products []domain.Product, categories []domain.ProductCategory) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	insertProduct := `
		INSERT INTO products (id, name, category, availability, featured, position, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode product %s: %w", p.ID, err)
		}
		_, err = tx.ExecContext(ctx, insertProduct,
			p.ID, p.Name, string(p.Category), string(p.Availability), p.Featured, i, string(data), now)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	for i, c := range categories {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode category %s: %w", c.ID, err)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO categories (id, position, data) VALUES (?, ?, ?)`, c.ID, i, string(data))
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}
