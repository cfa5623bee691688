package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/storage"
)

const DefaultLocalDelay = time.Second

// LocalSubmitter simulates a backend call and appends the request to the
// submitted-quotes list in device storage.
type LocalSubmitter struct {
	mu     sync.Mutex
	store  storage.Store
	delay  time.Duration
	logger *slog.Logger
}

func NewLocalSubmitter(store storage.Store, delay time.Duration, logger *slog.Logger) *LocalSubmitter {
	return &LocalSubmitter{store: store, delay: delay, logger: logger}
}

func (s *LocalSubmitter) Submit(ctx context.Context, req *domain.QuoteRequest) (string, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.load(ctx)
	if err != nil {
		// An unreadable list is replaced rather than blocking new requests.
		s.logger.Error("failed to parse submitted quotes", "error", err)
		quotes = nil
	}
	quotes = append(quotes, *req)
	if err := storage.SaveJSON(ctx, s.store, storage.KeySubmittedQuotes, quotes); err != nil {
		return "", fmt.Errorf("failed to save quote request: %w", err)
	}

	s.logger.Info("quote request submitted",
		"quote_id", req.ID,
		"items", len(req.CartItems),
		"customer_email", req.CustomerInfo.Email,
		"estimated_total", req.EstimatedTotal)
	return req.ID, nil
}

func (s *LocalSubmitter) List(ctx context.Context) ([]domain.QuoteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LocalSubmitter) load(ctx context.Context) ([]domain.QuoteRequest, error) {
	var quotes []domain.QuoteRequest
	err := storage.LoadJSON(ctx, s.store, storage.KeySubmittedQuotes, &quotes)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []domain.QuoteRequest{}, nil
	}
	if err != nil {
		return nil, err
	}
	return quotes, nil
}
