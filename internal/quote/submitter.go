// Package quote turns the cart into a quote request and hands it to a
// submission backend.
package quote

import (
	"context"
	"errors"

	"github.com/hardik88t/puredry/internal/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrQuoteNotFound     = errors.New("quote request not found")
	ErrInvalidTransition = errors.New("invalid quote status transition")
	ErrListUnsupported   = errors.New("submitter does not keep quote requests")
)

// Submitter delivers a quote request and returns the id it was accepted
// under.
type Submitter interface {
	Submit(ctx context.Context, req *domain.QuoteRequest) (string, error)
}

// Lister is implemented by submitters that keep what they accepted.
type Lister interface {
	List(ctx context.Context) ([]domain.QuoteRequest, error)
}
