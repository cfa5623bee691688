package quote

import (
	"context"
	"testing"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSubmitter_AppendsToList(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	s := NewLocalSubmitter(mem, 0, testLogger)

	first := &domain.QuoteRequest{ID: "quote-1", CartItems: sampleCart().Items, CustomerInfo: validCustomer(), Status: domain.QuoteStatusPending, CreatedAt: testClock()(), UpdatedAt: testClock()()}
	second := &domain.QuoteRequest{ID: "quote-2", CustomerInfo: validCustomer(), Status: domain.QuoteStatusPending, CreatedAt: testClock()(), UpdatedAt: testClock()()}

	id, err := s.Submit(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "quote-1", id)
	_, err = s.Submit(ctx, second)
	require.NoError(t, err)

	quotes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "quote-1", quotes[0].ID)
	assert.Equal(t, "quote-2", quotes[1].ID)
	assert.Equal(t, first.CartItems, quotes[0].CartItems)

	// A new submitter over the same storage sees the history.
	again, err := NewLocalSubmitter(mem, 0, testLogger).List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 2)
}

func TestLocalSubmitter_EmptyList(t *testing.T) {
	quotes, err := NewLocalSubmitter(storage.NewMemoryStore(), 0, testLogger).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestLocalSubmitter_CorruptListIsReplaced(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	require.NoError(t, mem.Save(ctx, storage.KeySubmittedQuotes, []byte("garbage")))

	s := NewLocalSubmitter(mem, 0, testLogger)
	_, err := s.Submit(ctx, &domain.QuoteRequest{ID: "quote-1"})
	require.NoError(t, err)

	quotes, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "quote-1", quotes[0].ID)
}

func TestLocalSubmitter_DelayHonoursContext(t *testing.T) {
	s := NewLocalSubmitter(storage.NewMemoryStore(), time.Hour, testLogger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Submit(ctx, &domain.QuoteRequest{ID: "quote-1"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	quotes, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}
