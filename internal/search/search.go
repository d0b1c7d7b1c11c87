package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/vitrinashop/vitrina/internal/domain"
)

// Suggestion is one ranked omnibar hit.
type Suggestion struct {
	Product domain.Product
	Rank    int // Lower is better
}

// Service ranks quick suggestions for the search omnibar. Exact catalog
// queries stay in the catalog service; this only orders candidates as
// the user types.
type Service struct {
	logger *slog.Logger
}

// NewService creates a new search service
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Suggest returns products whose name fuzzily matches query, best rank
// first, capped at limit. A blank query yields nothing.
func (s *Service) Suggest(query string, products []domain.Product, limit int) []Suggestion {
	query = strings.TrimSpace(query)
	if query == "" || len(products) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return nil
	}

	suggestions := make([]Suggestion, 0, len(ranks))
	for _, r := range ranks {
		suggestions = append(suggestions, Suggestion{
			Product: products[r.OriginalIndex],
			Rank:    r.Distance,
		})
	}

	// RankFind* sorts by appearance; order by distance ourselves.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Rank < suggestions[j].Rank
	})

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}
