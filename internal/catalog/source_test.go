package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	m          sync.RWMutex
	products   []domain.Product
	categories []domain.ProductCategory
	replaced   int
	err        error
}

func (s *mockSource) GetAllProducts(context.Context) ([]domain.Product, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.products, s.err
}

func (s *mockSource) GetCategories(context.Context) ([]domain.ProductCategory, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.categories, s.err
}

func (s *mockSource) CountProducts(context.Context) (int, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return len(s.products), s.err
}

func (s *mockSource) ReplaceCatalog(_ context.Context, products []domain.Product, categories []domain.ProductCategory) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	s.products = products
	s.categories = categories
	s.replaced++
	return nil
}

func TestLoad_SeedsEmptySource(t *testing.T) {
	src := &mockSource{}

	c, err := Load(context.Background(), src, testLogger)
	require.NoError(t, err)

	assert.Equal(t, 1, src.replaced)
	assert.Len(t, c.Products(), 10)
	assert.Len(t, c.Categories(), 4)
}

func TestLoad_KeepsExistingData(t *testing.T) {
	src := &mockSource{
		products:   []domain.Product{{ID: "only", Name: "Only", Category: domain.CategoryCustom}},
		categories: []domain.ProductCategory{{ID: "custom"}},
	}

	c, err := Load(context.Background(), src, testLogger)
	require.NoError(t, err)

	assert.Zero(t, src.replaced)
	require.Len(t, c.Products(), 1)
	assert.Equal(t, "only", c.Products()[0].ID)
}

func TestLoad_SourceError(t *testing.T) {
	_, err := Load(context.Background(), &mockSource{err: errors.New("db locked")}, testLogger)
	assert.ErrorContains(t, err, "db locked")

	_, err = Seed(context.Background(), &mockSource{err: errors.New("read only")})
	assert.ErrorContains(t, err, "seed catalog")
}

func TestLoad_FromSQLiteRepository(t *testing.T) {
	db, err := repository.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, repository.RunMigrations(db))

	ctx := context.Background()
	var src Source = repository.NewProductRepository(db)

	c, err := Load(ctx, src, testLogger)
	require.NoError(t, err)
	assert.Len(t, c.Products(), 10)
	assert.Len(t, c.Categories(), 4)

	p, err := c.Get("tomato-powder")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Powder", p.Name)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)

	// A populated store is read back, not reseeded.
	again, err := Load(ctx, src, testLogger)
	require.NoError(t, err)
	assert.Equal(t, c.Products(), again.Products())
}
