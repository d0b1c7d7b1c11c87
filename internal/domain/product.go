package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CategoryAll is the pseudo-category matching every product.
const CategoryAll = "all"

// Product represents one catalog entry. Immutable once loaded;
// the catalog service owns the canonical list.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"` // Display string, e.g. "1.250 RSD" or "$12.50"
	Country     string   `json:"country"`
	Category    string   `json:"category"`
	Images      []string `json:"images"` // Ordered gallery image URLs
	Tags        []string `json:"tags"`   // Filter tags
}

// HasTag reports whether the product carries the given filter tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// PrimaryImage returns the first gallery image, or "" when the product
// has no images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasGallery reports whether the product has enough images for an
// auto-rotating gallery. Single-image products never rotate.
func (p Product) HasGallery() bool {
	return len(p.Images) > 1
}

// PriceAmount parses the numeric portion of the display price.
// "1.250 RSD", "1.250,50 RSD" and "$12.50" all yield their decimal
// value; a price with no digits yields 0.
func (p Product) PriceAmount() float64 {
	var b strings.Builder
	seenDigit := false
	seps := 0
	for _, r := range p.Price {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case (r == '.' || r == ',') && seenDigit:
			seps++
			b.WriteRune('.')
		}
	}
	if !seenDigit {
		return 0
	}
	s := b.String()
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		if seps == 1 && len(s)-idx-1 == 3 {
			// A lone separator with exactly three trailing digits is
			// thousands grouping, not a decimal point.
			s = s[:idx] + s[idx+1:]
		} else {
			// Only the final separator is decimal; earlier ones are grouping.
			s = strings.ReplaceAll(s[:idx], ".", "") + s[idx:]
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// MatchesQuery reports whether text matches the product by
// case-insensitive substring over name, description, country and
// category.
func (p Product) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Description, p.Country, p.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ListItem interface implementation for Product

func (p *Product) GetID() string    { return p.ID }
func (p *Product) GetTitle() string { return p.Name }
func (p *Product) GetSortTitle() string {
	return strings.ToLower(p.Name)
}
func (p *Product) GetDescription() string {
	if p.Country != "" {
		return fmt.Sprintf("%s · %s", p.Price, p.Country)
	}
	return p.Price
}
func (p *Product) GetItemType() string { return "product" }

// Category groups products for the sidebar. Count is derived from the
// loaded list, not stored.
type Category struct {
	Tag   string // Filter tag, e.g. "serbia"
	Name  string // Display name, e.g. "Serbia"
	Count int    // Number of products carrying the tag
}

// ListItem interface implementation for Category

func (c *Category) GetID() string        { return c.Tag }
func (c *Category) GetTitle() string     { return c.Name }
func (c *Category) GetSortTitle() string { return strings.ToLower(c.Name) }
func (c *Category) GetItemType() string  { return "category" }

func (c *Category) GetDescription() string {
	if c.Count == 1 {
		return "1 product"
	}
	return fmt.Sprintf("%d products", c.Count)
}
