package domain

import "context"

// ListItem is the polymorphic interface for items that can be displayed
// in lists. Domain entities (Product, Category) implement this directly.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string

	// GetSortTitle returns the title used for alphabetical sorting
	GetSortTitle() string

	// GetDescription returns secondary info for display
	GetDescription() string

	// GetItemType returns the type identifier: "product", "category"
	GetItemType() string
}

// CatalogSource provides raw product lists. The HTTP client implements
// this; tests substitute stubs.
type CatalogSource interface {
	// FetchCountry fetches the product list for one country document.
	FetchCountry(ctx context.Context, country string) ([]Product, error)

	// FetchCombined fetches the single combined fallback document.
	FetchCombined(ctx context.Context) ([]Product, error)
}

// CatalogStore persists the merged catalog and small key-value pairs
// between runs.
type CatalogStore interface {
	GetProducts() ([]Product, bool)
	SaveProducts(products []Product) error

	GetValue(key string) (string, bool)
	SetValue(key, value string) error

	SaveContact(id string, payload []byte) error

	// SavedAt returns the unix time of the last catalog save, 0 when never.
	SavedAt() int64
	Close() error
}
