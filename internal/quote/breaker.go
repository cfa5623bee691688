package quote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureLimit uint32
}

// BreakerSubmitter stops calling a failing backend until it has had time to
// recover. While open, Submit fails fast with gobreaker.ErrOpenState.
type BreakerSubmitter struct {
	next Submitter
	cb   *gobreaker.CircuitBreaker[string]
}

func NewBreakerSubmitter(name string, next Submitter, cfg BreakerSettings, logger *slog.Logger) *BreakerSubmitter {
	limit := cfg.FailureLimit
	if limit == 0 {
		limit = 5
	}
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= limit
		},
		// A caller giving up says nothing about the backend.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("quote submitter breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerSubmitter{next: next, cb: cb}
}

func (s *BreakerSubmitter) Submit(ctx context.Context, req *domain.QuoteRequest) (string, error) {
	return s.cb.Execute(func() (string, error) {
		return s.next.Submit(ctx, req)
	})
}

func (s *BreakerSubmitter) State() gobreaker.State {
	return s.cb.State()
}

// List delegates to the wrapped submitter when it keeps history.
func (s *BreakerSubmitter) List(ctx context.Context) ([]domain.QuoteRequest, error) {
	l, ok := s.next.(Lister)
	if !ok {
		return nil, ErrListUnsupported
	}
	return l.List(ctx)
}
