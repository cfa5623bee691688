package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hardik88t/puredry/internal/domain"
)

type SuggestionType string

const (
	SuggestionProduct     SuggestionType = "product"
	SuggestionCategory    SuggestionType = "category"
	SuggestionTag         SuggestionType = "tag"
	SuggestionApplication SuggestionType = "application"
	SuggestionRecent      SuggestionType = "recent"
)

const (
	DefaultSuggestionLimit = 5
	RichSuggestionLimit    = 8
	recentSuggestionLimit  = 3
)

// Relevance weights for product matches.
const (
	scoreExactName        = 100
	scoreNameContains     = 50
	scoreShortDescription = 30
	scoreDescription      = 20
	scoreTag              = 15
	scoreApplication      = 10
	scoreCategory         = 25
)

type Suggestion struct {
	ID       string         `json:"id"`
	Type     SuggestionType `json:"type"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
	Category string         `json:"category,omitempty"`
	Score    int            `json:"score"`
}

// Suggest returns up to limit autocomplete entries for query, highest score
// first. Entries with equal scores keep their discovery order: products,
// categories, tags, applications. Titles are unique in the result.
//
// An empty query returns the recent searches followed by featured
// categories.
func Suggest(products []domain.Product, categories []domain.ProductCategory, recent []string, query string, limit int) []Suggestion {
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return idleSuggestions(categories, recent, limit)
	}

	var found []Suggestion
	for _, p := range products {
		if score := productScore(p, term); score > 0 {
			found = append(found, Suggestion{
				ID:       p.ID,
				Type:     SuggestionProduct,
				Title:    p.Name,
				Subtitle: p.ShortDescription,
				Category: string(p.Category),
				Score:    score,
			})
		}
	}

	for _, c := range categories {
		if containsFold(c.Name, term) || containsFold(c.Description, term) {
			found = append(found, Suggestion{
				ID:       c.ID,
				Type:     SuggestionCategory,
				Title:    c.Name,
				Subtitle: fmt.Sprintf("%d products", c.ProductCount),
				Score:    scoreCategory,
			})
		}
	}

	for _, p := range products {
		for _, tag := range p.Tags {
			if containsFold(tag, term) {
				found = append(found, Suggestion{
					ID:       "tag-" + tag,
					Type:     SuggestionTag,
					Title:    tag,
					Subtitle: "Product tag",
					Score:    scoreTag,
				})
			}
		}
	}

	for _, p := range products {
		for _, app := range p.Applications {
			if containsFold(app, term) {
				found = append(found, Suggestion{
					ID:       "app-" + app,
					Type:     SuggestionApplication,
					Title:    app,
					Subtitle: "Application",
					Score:    scoreApplication,
				})
			}
		}
	}

	found = dedupeByTitle(found)
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Score > found[j].Score
	})
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

func productScore(p domain.Product, term string) int {
	score := 0
	name := strings.ToLower(p.Name)
	switch {
	case name == term:
		score += scoreExactName
	case strings.Contains(name, term):
		score += scoreNameContains
	}
	if containsFold(p.Description, term) {
		score += scoreDescription
	}
	if containsFold(p.ShortDescription, term) {
		score += scoreShortDescription
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			score += scoreTag
		}
	}
	for _, app := range p.Applications {
		if containsFold(app, term) {
			score += scoreApplication
		}
	}
	return score
}

// dedupeByTitle keeps the first entry for each title, compared case-insensitively.
func dedupeByTitle(in []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(in))
	out := make([]Suggestion, 0, len(in))
	for _, s := range in {
		key := strings.ToLower(s.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func idleSuggestions(categories []domain.ProductCategory, recent []string, limit int) []Suggestion {
	out := make([]Suggestion, 0, min(limit, len(recent)+len(categories)))
	for i, q := range recent {
		if i >= recentSuggestionLimit {
			break
		}
		out = append(out, Suggestion{
			ID:       fmt.Sprintf("recent-%d", i),
			Type:     SuggestionRecent,
			Title:    q,
			Subtitle: "Recent search",
		})
	}
	for _, c := range categories {
		if !c.Featured {
			continue
		}
		out = append(out, Suggestion{
			ID:       c.ID,
			Type:     SuggestionCategory,
			Title:    c.Name,
			Subtitle: fmt.Sprintf("%d products", c.ProductCount),
		})
	}
	out = dedupeByTitle(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
