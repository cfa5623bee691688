package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/quote"
	"github.com/hardik88t/puredry/internal/validation"
	"github.com/sony/gobreaker/v2"
)

type QuoteWorkflow interface {
	Submit(ctx context.Context, customer domain.CustomerInfo, req domain.Requirements) (string, error)
	State() quote.Status
}

type QuoteHandler struct {
	workflow QuoteWorkflow
	logger   *slog.Logger
}

func NewQuoteHandler(workflow QuoteWorkflow, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{workflow: workflow, logger: logger}
}

type QuoteRequestDTO struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
	Requirements domain.Requirements `json:"requirements"`
}

type QuoteResponse struct {
	QuoteID string `json:"quote_id"`
	Status  string `json:"status"`
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	id, err := h.workflow.Submit(r.Context(), req.CustomerInfo, req.Requirements)
	if err != nil {
		h.handleSubmitError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, QuoteResponse{QuoteID: id, Status: string(domain.QuoteStatusPending)})
}

// handleSubmitError reports backend failures as 502 unless they are a
// timeout, an open breaker or a request problem.
func (h *QuoteHandler) handleSubmitError(w http.ResponseWriter, err error) {
	var verr *quote.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, quote.ErrEmptyCart),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		handleError(w, err)
	default:
		respondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:   "failed to submit quote request",
			Code:    "submission_failed",
			Details: err.Error(),
		})
	}
}

func (h *QuoteHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.workflow.State())
}

// Contact validates the contact form and records the message in the log.
func (h *QuoteHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	errs, ok := validation.ValidateForm(map[string]string{
		"name":    req.Name,
		"email":   req.Email,
		"phone":   req.Phone,
		"company": req.Company,
		"message": req.Message,
	}, validation.ContactRules())
	if !ok {
		handleError(w, &quote.ValidationError{Fields: errs})
		return
	}

	h.logger.InfoContext(r.Context(), "contact message received",
		"request_id", getRequestID(r.Context()),
		"email", req.Email,
		"company", req.Company,
		"message_length", len(req.Message))
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
