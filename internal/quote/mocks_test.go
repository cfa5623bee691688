package quote

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hardik88t/puredry/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockCart struct {
	m       sync.RWMutex
	cart    domain.Cart
	cleared int
}

func (c *mockCart) Cart() domain.Cart {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.cart.Clone()
}

func (c *mockCart) ClearCart(context.Context) {
	c.m.Lock()
	defer c.m.Unlock()
	c.cart.Items = []domain.CartItem{}
	c.cleared++
}

type mockSubmitter struct {
	m        sync.RWMutex
	requests []*domain.QuoteRequest
	err      error
	block    chan struct{}
}

func (s *mockSubmitter) Submit(ctx context.Context, req *domain.QuoteRequest) (string, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	s.m.Lock()
	defer s.m.Unlock()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return req.ID, nil
}

func (s *mockSubmitter) calls() int {
	s.m.RLock()
	defer s.m.RUnlock()
	return len(s.requests)
}

func testClock() func() time.Time {
	t := time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func sampleCart() domain.Cart {
	v := 5.5
	return domain.Cart{
		ID: "cart-1",
		Items: []domain.CartItem{
			{
				ID:       "garlic-powder-kg-1",
				Product:  domain.Product{ID: "garlic-powder", Name: "Garlic Powder", Price: domain.Price{Currency: "USD", Unit: "kg", Value: &v}},
				Quantity: 4,
				Unit:     "kg",
				AddedAt:  time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC),
			},
		},
		EstimatedTotal: 22,
		Currency:       "USD",
	}
}

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:    "Ann Buyer",
		Email:   "ann@example.com",
		Company: "Harbour Foods",
		Country: "India",
	}
}

func validRequirements() domain.Requirements {
	return domain.Requirements{ShippingAddress: "12 Harbour Road, Kochi"}
}
