package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/hardik88t/puredry/internal/storage"
)

const MaxRecentSearches = 5

// RecentSearches is the most-recent-first search history of the device.
type RecentSearches struct {
	mu      sync.Mutex
	store   storage.Store
	logger  *slog.Logger
	entries []string
}

// NewRecentSearches restores the saved history. Unreadable state is logged
// and replaced by an empty history.
func NewRecentSearches(ctx context.Context, store storage.Store, logger *slog.Logger) *RecentSearches {
	r := &RecentSearches{store: store, logger: logger}
	var saved []string
	err := storage.LoadJSON(ctx, store, storage.KeyRecentSearches, &saved)
	switch {
	case err == nil:
		if len(saved) > MaxRecentSearches {
			saved = saved[:MaxRecentSearches]
		}
		r.entries = saved
	case errors.Is(err, storage.ErrKeyNotFound):
	default:
		logger.Error("failed to parse recent searches", "error", err)
	}
	return r
}

// Add moves query to the front, dropping duplicates and the oldest entries.
// Blank queries are ignored.
func (r *RecentSearches) Add(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]string, 0, MaxRecentSearches)
	next = append(next, query)
	for _, q := range r.entries {
		if len(next) == MaxRecentSearches {
			break
		}
		if q != query {
			next = append(next, q)
		}
	}
	r.entries = next

	if err := storage.SaveJSON(ctx, r.store, storage.KeyRecentSearches, r.entries); err != nil {
		r.logger.Warn("failed to save recent searches", "error", err)
	}
}

func (r *RecentSearches) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}
