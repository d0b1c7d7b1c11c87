package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceAmount(t *testing.T) {
	tests := []struct {
		price string
		want  float64
	}{
		{"450 RSD", 450},
		{"1.250 RSD", 1250},
		{"2.500 RSD", 2500},
		{"12.500 RSD", 12500},
		{"1.250,50 RSD", 1250.50},
		{"$12.50", 12.50},
		{"$0.50", 0.50},
		{"1,5 EUR", 1.5},
		{"$1,299.99", 1299.99},
		{"free", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			p := Product{Price: tt.price}
			assert.InDelta(t, tt.want, p.PriceAmount(), 1e-9)
		})
	}
}

func TestHasTag(t *testing.T) {
	p := Product{Tags: []string{"serbia", "Food"}}

	assert.True(t, p.HasTag("serbia"))
	assert.True(t, p.HasTag("SERBIA"))
	assert.True(t, p.HasTag("food"))
	assert.False(t, p.HasTag("china"))
	assert.False(t, Product{}.HasTag("serbia"))
}

func TestGalleryHelpers(t *testing.T) {
	none := Product{}
	one := Product{Images: []string{"a.jpg"}}
	many := Product{Images: []string{"a.jpg", "b.jpg"}}

	assert.Equal(t, "", none.PrimaryImage())
	assert.Equal(t, "a.jpg", one.PrimaryImage())
	assert.Equal(t, "a.jpg", many.PrimaryImage())

	assert.False(t, none.HasGallery())
	assert.False(t, one.HasGallery(), "single image must not rotate")
	assert.True(t, many.HasGallery())
}

func TestMatchesQuery(t *testing.T) {
	p := Product{
		Name:        "Green Tea",
		Description: "Loose leaf from Hangzhou",
		Country:     "China",
		Category:    "drink",
	}

	assert.True(t, p.MatchesQuery("green"))
	assert.True(t, p.MatchesQuery("HANGZHOU"))
	assert.True(t, p.MatchesQuery("china"))
	assert.True(t, p.MatchesQuery("drink"))
	assert.True(t, p.MatchesQuery(""), "blank query matches everything")
	assert.True(t, p.MatchesQuery("  "))
	assert.False(t, p.MatchesQuery("serbia"))
}

func TestContactValidate(t *testing.T) {
	valid := ContactMessage{Name: "Mira", Email: "mira@example.com", Message: "Do you ship abroad?"}
	assert.Empty(t, valid.Validate())

	missing := ContactMessage{}
	problems := missing.Validate()
	assert.Len(t, problems, 3)

	badEmail := ContactMessage{Name: "Mira", Email: "mira@", Message: "Do you ship abroad?"}
	problems = badEmail.Validate()
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "email")

	short := ContactMessage{Name: "Mira", Email: "mira@example.com", Message: "hi"}
	problems = short.Validate()
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "10 characters")
}

func TestListItemImplementations(t *testing.T) {
	var _ ListItem = &Product{}
	var _ ListItem = &Category{}

	p := &Product{ID: "1", Name: "Ajvar", Price: "450 RSD", Country: "Serbia"}
	assert.Equal(t, "1", p.GetID())
	assert.Equal(t, "Ajvar", p.GetTitle())
	assert.Equal(t, "ajvar", p.GetSortTitle())
	assert.Equal(t, "450 RSD · Serbia", p.GetDescription())
	assert.Equal(t, "product", p.GetItemType())

	c := &Category{Tag: "serbia", Name: "Serbia", Count: 1}
	assert.Equal(t, "1 product", c.GetDescription())
	c.Count = 4
	assert.Equal(t, "4 products", c.GetDescription())
}
