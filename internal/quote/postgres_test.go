package quote

import (
	"context"
	"testing"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*PostgresSubmitter, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	sub, err := NewPostgresSubmitter(&Credentials{
		Host:     host,
		Port:     port.Int(),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
	})
	require.NoError(t, err)
	require.NoError(t, sub.RunMigrations())

	cleanup := func() {
		sub.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return sub, cleanup
}

func TestPostgresSubmitter_SubmitAndList(t *testing.T) {
	sub, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	delivery := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.QuoteRequest{
		ID:             "quote-pg-1",
		CartItems:      sampleCart().Items,
		CustomerInfo:   validCustomer(),
		Requirements:   domain.Requirements{ShippingAddress: "12 Harbour Road", DeliveryDate: &delivery},
		EstimatedTotal: 22,
		Currency:       "USD",
		Status:         domain.QuoteStatusPending,
		CreatedAt:      testClock()(),
		UpdatedAt:      testClock()(),
	}

	id, err := sub.Submit(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "quote-pg-1", id)

	quotes, err := sub.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	got := quotes[0]
	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, req.CustomerInfo, got.CustomerInfo)
	assert.Equal(t, req.CartItems, got.CartItems)
	assert.True(t, delivery.Equal(*got.Requirements.DeliveryDate))
	assert.Equal(t, 22.0, got.EstimatedTotal)
	assert.True(t, req.CreatedAt.Equal(got.CreatedAt))

	// Duplicate ids are rejected by the primary key.
	_, err = sub.Submit(ctx, req)
	assert.Error(t, err)
}

func TestPostgresSubmitter_UpdateStatus(t *testing.T) {
	sub, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := sub.Submit(ctx, &domain.QuoteRequest{
		ID:           "quote-pg-2",
		CustomerInfo: validCustomer(),
		Currency:     "USD",
		Status:       domain.QuoteStatusPending,
		CreatedAt:    testClock()(),
		UpdatedAt:    testClock()(),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, sub.UpdateStatus(ctx, "quote-pg-2", domain.QuoteStatusAccepted), ErrInvalidTransition)
	require.NoError(t, sub.UpdateStatus(ctx, "quote-pg-2", domain.QuoteStatusProcessing))
	assert.ErrorIs(t, sub.UpdateStatus(ctx, "missing", domain.QuoteStatusProcessing), ErrQuoteNotFound)

	quotes, err := sub.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, domain.QuoteStatusProcessing, quotes[0].Status)
}
