package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hardik88t/puredry/internal/domain"
)

// Source is the stored copy of the catalog the service reads at startup.
type Source interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetCategories(ctx context.Context) ([]domain.ProductCategory, error)
	CountProducts(ctx context.Context) (int, error)
	ReplaceCatalog(ctx context.Context, products []domain.Product, categories []domain.ProductCategory) error
}

// Seed writes the compiled-in dataset to src.
func Seed(ctx context.Context, src Source) (int, error) {
	products, categories, err := LoadDefault()
	if err != nil {
		return 0, err
	}
	if err := src.ReplaceCatalog(ctx, products, categories); err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	return len(products), nil
}

// Load reads the catalog from src, seeding it first when it is empty.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Catalog, error) {
	n, err := src.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		seeded, err := Seed(ctx, src)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog seeded", "products", seeded)
	}

	products, err := src.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := src.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "products", len(products), "categories", len(categories))
	return New(products, categories), nil
}
