package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const DefaultTimeout = 30 * time.Second

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// CartSource is the part of the cart store the workflow needs.
type CartSource interface {
	Cart() domain.Cart
	ClearCart(ctx context.Context)
}

// ValidationError carries the per-field messages of a rejected request.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

type Status struct {
	State   State  `json:"state"`
	QuoteID string `json:"quote_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type WorkflowOption func(*Workflow)

func WithTimeout(d time.Duration) WorkflowOption {
	return func(w *Workflow) {
		if d > 0 {
			w.timeout = d
		}
	}
}

func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) { w.now = now }
}

func WithTracer(t trace.Tracer) WorkflowOption {
	return func(w *Workflow) { w.tracer = t }
}

// Workflow runs idle -> submitting -> success|error for the device cart.
type Workflow struct {
	cart      CartSource
	submitter Submitter
	logger    *slog.Logger
	tracer    trace.Tracer
	timeout   time.Duration
	now       func() time.Time
	rules     validation.Rules
	group     singleflight.Group

	mu     sync.RWMutex
	status Status
}

func NewWorkflow(cart CartSource, submitter Submitter, logger *slog.Logger, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		cart:      cart,
		submitter: submitter,
		logger:    logger,
		tracer:    otel.Tracer("github.com/hardik88t/puredry/internal/quote"),
		timeout:   DefaultTimeout,
		now:       func() time.Time { return time.Now().UTC() },
		rules:     validation.QuoteRules(),
		status:    Status{State: StateIdle},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) State() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// Submit validates the customer details, snapshots the cart and hands the
// request to the submitter. The cart is cleared only after the submitter
// accepts the request. Concurrent calls for the same cart share one
// submission and its result. Cancelling ctx returns early without aborting
// the submission.
func (w *Workflow) Submit(ctx context.Context, customer domain.CustomerInfo, req domain.Requirements) (string, error) {
	if errs, ok := validation.ValidateForm(formValues(customer, req), w.rules); !ok {
		w.setStatus(Status{State: StateIdle})
		return "", &ValidationError{Fields: errs}
	}

	cart := w.cart.Cart()
	if len(cart.Items) == 0 {
		w.setStatus(Status{State: StateIdle})
		return "", ErrEmptyCart
	}

	// A caller that gives up only stops waiting; the submission itself is
	// bounded by w.timeout.
	detached := context.WithoutCancel(ctx)
	ch := w.group.DoChan(cart.ID, func() (any, error) {
		return w.submit(detached, cart, customer, req)
	})

	select {
	case res := <-ch:
		if res.Shared {
			w.logger.Debug("quote submission shared", "cart_id", cart.ID)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		w.logger.InfoContext(ctx, "stopped waiting for quote submission", "cart_id", cart.ID, "error", ctx.Err())
		return "", ctx.Err()
	}
}

func (w *Workflow) submit(ctx context.Context, cart domain.Cart, customer domain.CustomerInfo, reqs domain.Requirements) (string, error) {
	w.setStatus(Status{State: StateSubmitting})

	now := w.now()
	req := &domain.QuoteRequest{
		ID:             "quote-" + uuid.NewString(),
		CartItems:      cart.Clone().Items,
		CustomerInfo:   customer,
		Requirements:   reqs,
		EstimatedTotal: cart.EstimatedTotal,
		Currency:       cart.Currency,
		Status:         domain.QuoteStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, span := w.tracer.Start(ctx, "quote.Submit", trace.WithAttributes(
		attribute.String("quote.id", req.ID),
		attribute.String("cart.id", cart.ID),
		attribute.Int("cart.items", len(req.CartItems)),
	))
	defer span.End()

	submitCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	id, err := w.submitter.Submit(submitCtx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("quote submission timed out after %s: %w", w.timeout, err)
		} else {
			err = fmt.Errorf("failed to submit quote request: %w", err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		w.logger.ErrorContext(ctx, "quote submission failed", "quote_id", req.ID, "error", err)
		w.setStatus(Status{State: StateError, Error: err.Error()})
		return "", err
	}
	if id == "" {
		id = req.ID
	}

	w.cart.ClearCart(ctx)
	w.logger.InfoContext(ctx, "quote request accepted", "quote_id", id, "items", len(req.CartItems))
	w.setStatus(Status{State: StateSuccess, QuoteID: id})
	return id, nil
}

func (w *Workflow) setStatus(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = s
}

func formValues(c domain.CustomerInfo, r domain.Requirements) map[string]string {
	return map[string]string{
		"name":             c.Name,
		"email":            c.Email,
		"company":          c.Company,
		"phone":            c.Phone,
		"country":          c.Country,
		"shipping_address": r.ShippingAddress,
	}
}
