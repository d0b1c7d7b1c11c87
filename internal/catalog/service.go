package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vitrinashop/vitrina/internal/domain"
)

// Service is the product store: it owns the merged in-memory product
// list and answers category, price and text queries, each memoized by
// its argument signature until the next Load/Refresh.
//
// Query failures never escape: a load that cannot reach any source
// degrades to the last persisted catalog, then to an empty list, with
// the error logged and returned only so the UI can surface a toast.
type Service struct {
	source domain.CatalogSource
	store  domain.CatalogStore // optional persisted fallback, may be nil
	logger *slog.Logger

	countries []string

	mu       sync.RWMutex
	products []domain.Product
	loaded   bool

	cacheMu    sync.RWMutex
	queryCache map[string][]domain.Product

	loadGroup singleflight.Group
}

// NewService creates a catalog service over the given source.
func NewService(source domain.CatalogSource, st domain.CatalogStore, countries []string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:     source,
		store:      st,
		logger:     logger,
		countries:  countries,
		queryCache: make(map[string][]domain.Product),
	}
}

// Load fetches and merges the per-country product lists exactly once.
// Concurrent calls share the in-flight load instead of re-fetching.
// The returned error reports what went wrong for notification purposes;
// the service itself always ends up in a usable (possibly empty) state.
func (s *Service) Load(ctx context.Context) error {
	s.mu.RLock()
	if s.loaded {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	_, err, _ := s.loadGroup.Do("load", func() (interface{}, error) {
		// Re-check under the group: a concurrent winner may have
		// finished between the flag check and Do.
		s.mu.RLock()
		done := s.loaded
		s.mu.RUnlock()
		if done {
			return nil, nil
		}
		return nil, s.doLoad(ctx)
	})
	return err
}

// Refresh clears all memoized queries and reloads from the sources.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	s.clearQueryCache()
	return s.Load(ctx)
}

// doLoad performs the actual fetch-merge-install sequence.
func (s *Service) doLoad(ctx context.Context) error {
	products, err := s.fetchAll(ctx)
	if err != nil {
		// Degrade to the persisted catalog, then to empty.
		if s.store != nil {
			if cached, ok := s.store.GetProducts(); ok {
				s.logger.Warn("catalog fetch failed, using persisted catalog",
					"error", err, "count", len(cached), "saved_at", s.store.SavedAt())
				s.install(cached)
				return err
			}
		}
		s.logger.Error("catalog fetch failed, starting empty", "error", err)
		s.install(nil)
		return err
	}

	s.install(products)
	if s.store != nil {
		if serr := s.store.SaveProducts(products); serr != nil {
			s.logger.Warn("failed to persist catalog", "error", serr)
		}
	}
	s.logger.Info("catalog loaded", "count", len(products))
	return nil
}

// fetchAll merges the per-country documents; when none are configured
// or every one fails, it falls back to the combined document.
func (s *Service) fetchAll(ctx context.Context) ([]domain.Product, error) {
	var merged []domain.Product
	var lastErr error
	seen := make(map[string]bool)

	for _, country := range s.countries {
		products, err := s.source.FetchCountry(ctx, country)
		if err != nil {
			s.logger.Warn("country fetch failed", "country", country, "error", err)
			lastErr = err
			continue
		}
		for _, p := range products {
			if p.ID == "" || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}

	if len(merged) > 0 {
		return merged, nil
	}

	// Per-country loader absent or dead: accept the combined document.
	products, err := s.source.FetchCombined(ctx)
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return products, nil
}

// install swaps in a new canonical list and invalidates every memo.
func (s *Service) install(products []domain.Product) {
	if products == nil {
		products = []domain.Product{}
	}
	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()
	s.clearQueryCache()
}

// Products returns the current product list, order preserved.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Loaded reports whether a load has completed (successfully or not).
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// FilterByCategory returns the products carrying the tag. The "all"
// pseudo-tag returns the full list, same elements, order preserved.
func (s *Service) FilterByCategory(tag string) []domain.Product {
	key := categoryKey(tag)
	if cached, ok := s.getCached(key); ok {
		return cached
	}

	all := s.Products()
	var result []domain.Product
	if strings.EqualFold(tag, domain.CategoryAll) || strings.TrimSpace(tag) == "" {
		result = all
	} else {
		result = []domain.Product{}
		for _, p := range all {
			if p.HasTag(tag) {
				result = append(result, p)
			}
		}
	}

	s.setCached(key, result)
	return result
}

// ByID returns the product with the given identifier.
func (s *Service) ByID(id string) (domain.Product, error) {
	key := idKey(id)
	if cached, ok := s.getCached(key); ok {
		if len(cached) == 0 {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return cached[0], nil
	}

	for _, p := range s.Products() {
		if p.ID == id {
			s.setCached(key, []domain.Product{p})
			return p, nil
		}
	}
	s.setCached(key, []domain.Product{})
	return domain.Product{}, domain.ErrProductNotFound
}

// ByPriceRange returns products whose parsed price falls in [min, max].
func (s *Service) ByPriceRange(min, max float64) []domain.Product {
	key := priceKey(min, max)
	if cached, ok := s.getCached(key); ok {
		return cached
	}

	result := []domain.Product{}
	for _, p := range s.Products() {
		amount := p.PriceAmount()
		if amount >= min && amount <= max {
			result = append(result, p)
		}
	}

	s.setCached(key, result)
	return result
}

// Search returns products matching text by case-insensitive substring
// over name, description, country and category. Empty or whitespace
// queries return the full, unfiltered list.
func (s *Service) Search(text string) []domain.Product {
	if strings.TrimSpace(text) == "" {
		return s.Products()
	}

	key := searchKey(text)
	if cached, ok := s.getCached(key); ok {
		return cached
	}

	result := []domain.Product{}
	for _, p := range s.Products() {
		if p.MatchesQuery(text) {
			result = append(result, p)
		}
	}

	s.setCached(key, result)
	return result
}

// Categories derives the sidebar categories with product counts, sorted
// by display name, with "All" first.
func (s *Service) Categories() []domain.Category {
	counts := make(map[string]int)
	for _, p := range s.Products() {
		for _, t := range p.Tags {
			counts[strings.ToLower(t)]++
		}
	}

	tags := make([]string, 0, len(counts))
	for t := range counts {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	categories := make([]domain.Category, 0, len(tags)+1)
	categories = append(categories, domain.Category{
		Tag:   domain.CategoryAll,
		Name:  "All",
		Count: len(s.Products()),
	})
	for _, t := range tags {
		categories = append(categories, domain.Category{
			Tag:   t,
			Name:  titleCase(t),
			Count: counts[t],
		})
	}
	return categories
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// === Query cache ===

// getFromCache/setCache are invalidated wholesale on install, never by TTL.

func (s *Service) getCached(key string) ([]domain.Product, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()
	cached, ok := s.queryCache[key]
	return cached, ok
}

func (s *Service) setCached(key string, products []domain.Product) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.queryCache[key] = products
}

func (s *Service) clearQueryCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.queryCache = make(map[string][]domain.Product)
}
