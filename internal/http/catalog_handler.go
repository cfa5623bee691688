package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hardik88t/puredry/internal/catalog"
	"github.com/hardik88t/puredry/internal/domain"
)

const (
	defaultRelatedLimit = 4
	maxRelatedLimit     = 12
)

type ProductCatalog interface {
	Products() []domain.Product
	Categories() []domain.ProductCategory
	Get(id string) (domain.Product, error)
	Related(id string, limit int) ([]domain.Product, error)
	Compare(ids []string) (catalog.Comparison, error)
}

type SearchHistory interface {
	Add(ctx context.Context, query string)
	List() []string
}

type CatalogHandler struct {
	catalog ProductCatalog
	history SearchHistory
	logger  *slog.Logger
}

func NewCatalogHandler(c ProductCatalog, history SearchHistory, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, history: history, logger: logger}
}

type CategoriesResponse struct {
	Categories []domain.ProductCategory `json:"categories"`
}

type SuggestionsResponse struct {
	Query       string               `json:"query"`
	Suggestions []catalog.Suggestion `json:"suggestions"`
}

type RecentSearchesResponse struct {
	Searches []string `json:"searches"`
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CategoriesResponse{Categories: h.catalog.Categories()})
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec := catalog.FilterSpec{
		Search:       q.Get("search"),
		Category:     q.Get("category"),
		Availability: q.Get("availability"),
		SortBy:       catalog.SortBy(q.Get("sort_by")),
		SortOrder:    catalog.SortOrder(q.Get("sort_order")),
		Tags:         splitList(q.Get("tags")),
	}

	var err error
	if spec.Featured, err = boolParam(q.Get("featured")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_featured", "featured must be true or false")
		return
	}
	if spec.Page, err = intParam(q.Get("page"), 1); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
		return
	}
	if spec.PageSize, err = intParam(q.Get("page_size"), catalog.DefaultPageSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be an integer")
		return
	}
	spec.PageSize = min(spec.PageSize, catalog.MaxPageSize)

	res := catalog.Query(h.catalog.Products(), spec)
	if strings.TrimSpace(spec.Search) != "" {
		h.history.Add(r.Context(), spec.Search)
	}

	h.logger.DebugContext(r.Context(), "catalog query",
		"request_id", getRequestID(r.Context()),
		"search", spec.Search,
		"category", spec.Category,
		"total", res.TotalCount)
	respondJSON(w, http.StatusOK, res)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r.URL.Query().Get("limit"), defaultRelatedLimit)
	if err != nil || limit < 1 {
		respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
		return
	}

	related, err := h.catalog.Related(chi.URLParam(r, "id"), min(limit, maxRelatedLimit))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: related})
}

func (h *CatalogHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}

	quantity := 100.0
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		quantity, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be a number")
			return
		}
	}
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "grams"
	}

	facts, err := catalog.Nutrition(p, quantity, unit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, facts)
}

func (h *CatalogHandler) Compare(w http.ResponseWriter, r *http.Request) {
	cmp, err := h.catalog.Compare(splitList(r.URL.Query().Get("ids")))
	if err != nil {
		handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cmp)
}

func (h *CatalogHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, err := intParam(r.URL.Query().Get("limit"), catalog.DefaultSuggestionLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return
	}

	limit = min(limit, catalog.RichSuggestionLimit)
	suggestions := catalog.Suggest(h.catalog.Products(), h.catalog.Categories(), h.history.List(), query, limit)
	respondJSON(w, http.StatusOK, SuggestionsResponse{Query: query, Suggestions: suggestions})
}

func (h *CatalogHandler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RecentSearchesResponse{Searches: h.history.List()})
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func boolParam(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
