package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hardik88t/puredry/internal/domain"
)

type CartService interface {
	Cart() domain.Cart
	Summary() domain.CartSummary
	AddItem(ctx context.Context, product domain.Product, quantity int, unit, notes string) (domain.CartItem, error)
	RemoveItem(ctx context.Context, itemID string)
	UpdateQuantity(ctx context.Context, itemID string, quantity int)
	UpdateUnit(ctx context.Context, itemID, unit string) error
	UpdateNotes(ctx context.Context, itemID, notes string)
	ClearCart(ctx context.Context)
}

type ProductLookup interface {
	Get(id string) (domain.Product, error)
}

type CartHandler struct {
	cart     CartService
	products ProductLookup
	logger   *slog.Logger
}

func NewCartHandler(cart CartService, products ProductLookup, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, products: products, logger: logger}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Notes     string `json:"notes"`
}

// UpdateItemRequestDTO applies any subset of its fields. A quantity of zero
// or less removes the item.
type UpdateItemRequestDTO struct {
	Quantity *int    `json:"quantity"`
	Unit     *string `json:"unit"`
	Notes    *string `json:"notes"`
}

type AddItemResponse struct {
	Item domain.CartItem `json:"item"`
	Cart domain.Cart     `json:"cart"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cart.Cart())
}

func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cart.Summary())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.products.Get(req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	item, err := h.cart.AddItem(r.Context(), product, req.Quantity, req.Unit, req.Notes)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "cart item added",
		"request_id", getRequestID(r.Context()),
		"item_id", item.ID,
		"product_id", product.ID,
		"quantity", item.Quantity)
	respondJSON(w, http.StatusCreated, AddItemResponse{Item: item, Cart: h.cart.Cart()})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req UpdateItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil && req.Unit == nil && req.Notes == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	if req.Unit != nil {
		if err := h.cart.UpdateUnit(r.Context(), itemID, *req.Unit); err != nil {
			handleError(w, err)
			return
		}
	}
	if req.Notes != nil {
		h.cart.UpdateNotes(r.Context(), itemID, *req.Notes)
	}
	if req.Quantity != nil {
		h.cart.UpdateQuantity(r.Context(), itemID, *req.Quantity)
	}

	respondJSON(w, http.StatusOK, h.cart.Cart())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.RemoveItem(r.Context(), chi.URLParam(r, "item_id"))
	respondJSON(w, http.StatusOK, h.cart.Cart())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	respondJSON(w, http.StatusOK, h.cart.Cart())
}
