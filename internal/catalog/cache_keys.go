package catalog

import (
	"fmt"
	"strings"
)

// Cache key prefixes for memoized query results. Every key is cleared
// wholesale on Load/Refresh; there is no per-key TTL.
const (
	// PrefixCategory is the prefix for category filter results (category:{tag})
	PrefixCategory = "category:"

	// PrefixSearch is the prefix for text search results (search:{query})
	PrefixSearch = "search:"

	// PrefixPrice is the prefix for price range results (price:{min}-{max})
	PrefixPrice = "price:"

	// PrefixID is the prefix for single-product lookups (id:{id})
	PrefixID = "id:"
)

func categoryKey(tag string) string {
	return PrefixCategory + strings.ToLower(tag)
}

func searchKey(query string) string {
	return PrefixSearch + strings.ToLower(strings.TrimSpace(query))
}

func priceKey(min, max float64) string {
	return fmt.Sprintf("%s%g-%g", PrefixPrice, min, max)
}

func idKey(id string) string {
	return PrefixID + id
}
