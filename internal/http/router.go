// Package http exposes the catalog, cart and quote operations as a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	// AccessLog enables chi's request logger.
	AccessLog bool
}

func NewRouter(cfg RouterConfig, catalog *CatalogHandler, cart *CartHandler, quotes *QuoteHandler) http.Handler {
	r := chi.NewRouter()

	if cfg.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(MaxBodyMiddleware(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", catalog.ListCategories)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalog.ListProducts)
			r.Get("/compare", catalog.Compare)
			r.Get("/{id}", catalog.GetProduct)
			r.Get("/{id}/related", catalog.RelatedProducts)
			r.Get("/{id}/nutrition", catalog.Nutrition)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/suggestions", catalog.Suggestions)
			r.Get("/recent", catalog.RecentSearches)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Delete("/", cart.ClearCart)
			r.Get("/summary", cart.GetSummary)
			r.Post("/items", cart.AddItem)
			r.Patch("/items/{item_id}", cart.UpdateItem)
			r.Delete("/items/{item_id}", cart.RemoveItem)
		})

		r.Post("/quotes", quotes.Submit)
		r.Get("/quotes/state", quotes.State)
		r.Post("/contact", quotes.Contact)
	})

	return otelhttp.NewHandler(r, "puredry-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
