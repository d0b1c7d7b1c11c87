package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinashop/vitrina/internal/domain"
)

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Green Tea"},
		{ID: "2", Name: "Greek Olive Oil"},
		{ID: "3", Name: "Rakija"},
		{ID: "4", Name: "Ajvar"},
		{ID: "5", Name: "Tea Set"},
	}
}

func TestSuggestRanksByCloseness(t *testing.T) {
	svc := NewService(nil)

	got := svc.Suggest("tea", catalogFixture(), 10)
	require.NotEmpty(t, got)

	// "Tea Set" is the closest match for "tea"; "Green Tea" also hits.
	assert.Equal(t, "5", got[0].Product.ID)

	ids := make(map[string]bool)
	for _, s := range got {
		ids[s.Product.ID] = true
	}
	assert.True(t, ids["1"])

	// Ranks come back sorted best-first.
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Rank, got[i].Rank)
	}
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	svc := NewService(nil)

	got := svc.Suggest("RAKIJA", catalogFixture(), 10)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].Product.ID)
}

func TestSuggestBlankQuery(t *testing.T) {
	svc := NewService(nil)

	assert.Nil(t, svc.Suggest("", catalogFixture(), 10))
	assert.Nil(t, svc.Suggest("   ", catalogFixture(), 10))
}

func TestSuggestEmptyCatalog(t *testing.T) {
	svc := NewService(nil)
	assert.Nil(t, svc.Suggest("tea", nil, 10))
}

func TestSuggestNoMatches(t *testing.T) {
	svc := NewService(nil)
	assert.Empty(t, svc.Suggest("xyzzy", catalogFixture(), 10))
}

func TestSuggestEqualRanksKeepOrder(t *testing.T) {
	svc := NewService(nil)

	products := []domain.Product{
		{ID: "1", Name: "Tea Bar"},
		{ID: "2", Name: "Tea Car"},
	}

	got := svc.Suggest("tea", products, 10)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Rank, got[1].Rank)
	assert.Equal(t, "1", got[0].Product.ID, "ties keep catalog order")
}

func TestSuggestRespectsLimit(t *testing.T) {
	svc := NewService(nil)

	products := make([]domain.Product, 30)
	for i := range products {
		products[i] = domain.Product{ID: string(rune('a' + i)), Name: "Tea"}
	}

	got := svc.Suggest("tea", products, 5)
	assert.Len(t, got, 5)

	// Zero limit falls back to the default cap.
	got = svc.Suggest("tea", products, 0)
	assert.Len(t, got, 10)
}
