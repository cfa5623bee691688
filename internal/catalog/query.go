package catalog

import (
	"sort"
	"strings"

	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/pricing"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortBy string

const (
	SortByName       SortBy = "name"
	SortByPrice      SortBy = "price"
	SortByPopularity SortBy = "popularity"
	// SortByNewest has no creation date to work with and orders by reverse
	// name instead.
	SortByNewest SortBy = "newest"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPageSize = 12
	// MaxPageSize bounds page sizes accepted from clients.
	MaxPageSize = 100
	CategoryAll = "all"
)

// FilterSpec describes one catalog query. The zero value matches every
// product, sorted by name ascending, first page of DefaultPageSize.
type FilterSpec struct {
	Search       string
	Category     string
	Availability string
	Featured     bool
	Tags         []string
	SortBy       SortBy
	SortOrder    SortOrder
	Page         int
	PageSize     int
}

// IsFiltered reports whether any filter other than sorting and paging is set.
func (f FilterSpec) IsFiltered() bool {
	return strings.TrimSpace(f.Search) != "" ||
		(f.Category != "" && f.Category != CategoryAll) ||
		f.Availability != "" ||
		f.Featured ||
		len(f.Tags) > 0
}

func (f FilterSpec) normalized() FilterSpec {
	switch f.SortBy {
	case SortByName, SortByPrice, SortByPopularity, SortByNewest:
	default:
		f.SortBy = SortByName
	}
	if f.SortOrder != SortDesc {
		f.SortOrder = SortAsc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	return f
}

type Result struct {
	Items      []domain.Product `json:"items"`
	TotalCount int              `json:"total_count"`
	HasMore    bool             `json:"has_more"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	IsFiltered bool             `json:"is_filtered"`
}

// Query filters, sorts and pages products. The input slice is not modified.
func Query(products []domain.Product, spec FilterSpec) Result {
	spec = spec.normalized()
	matched := Filter(products, spec)

	total := len(matched)
	totalPages := total / spec.PageSize
	if total%spec.PageSize != 0 {
		totalPages++
	}

	// Page <= totalPages keeps the offset within int range.
	items := []domain.Product{}
	if spec.Page <= totalPages {
		start := (spec.Page - 1) * spec.PageSize
		end := start + min(spec.PageSize, total-start)
		items = matched[start:end]
	}

	return Result{
		Items:      items,
		TotalCount: total,
		HasMore:    spec.Page < totalPages,
		Page:       spec.Page,
		PageSize:   spec.PageSize,
		TotalPages: totalPages,
		IsFiltered: spec.IsFiltered(),
	}
}

// Filter applies the filters and the sort of spec without paging.
func Filter(products []domain.Product, spec FilterSpec) []domain.Product {
	spec = spec.normalized()
	term := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if spec.Category != "" && spec.Category != CategoryAll && string(p.Category) != spec.Category {
			continue
		}
		if spec.Availability != "" && string(p.Availability) != spec.Availability {
			continue
		}
		if spec.Featured && !p.Featured {
			continue
		}
		if len(spec.Tags) > 0 && !hasAnyTag(p, spec.Tags) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, spec.SortBy, spec.SortOrder)
	return out
}

func matchesSearch(p domain.Product, term string) bool {
	if containsFold(p.Name, term) ||
		containsFold(p.Description, term) ||
		containsFold(p.ShortDescription, term) ||
		containsFold(string(p.Category), term) ||
		containsFold(p.Specifications.Origin, term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	for _, app := range p.Applications {
		if containsFold(app, term) {
			return true
		}
	}
	return false
}

// containsFold expects term to be lower case already.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func hasAnyTag(p domain.Product, tags []string) bool {
	for _, want := range tags {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []domain.Product, by SortBy, order SortOrder) {
	// A Collator keeps internal buffers, so each sort gets its own.
	col := collate.New(language.English)
	byName := func(a, b domain.Product) int {
		return col.CompareString(a.Name, b.Name)
	}

	compare := func(a, b domain.Product) int {
		switch by {
		case SortByPrice:
			ka, kb := pricing.SortKey(a.Price), pricing.SortKey(b.Price)
			switch {
			case ka < kb:
				return -1
			case ka > kb:
				return 1
			}
			return 0
		case SortByPopularity:
			if a.Featured != b.Featured {
				if a.Featured {
					return -1
				}
				return 1
			}
			return byName(a, b)
		case SortByNewest:
			return byName(b, a)
		default:
			return byName(a, b)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		c := compare(products[i], products[j])
		if order == SortDesc {
			c = -c
		}
		return c < 0
	})
}
