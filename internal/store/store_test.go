package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinashop/vitrina/internal/domain"
)

var _ domain.CatalogStore = (*CatalogStore)(nil)

func newTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	st, err := NewCatalogStore(t.TempDir(), "https://example.com/catalog")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "rs-1", Name: "Ajvar", Price: "450 RSD", Tags: []string{"serbia"}},
		{ID: "cn-1", Name: "Green Tea", Price: "$8.50", Images: []string{"tea.jpg"}},
	}
}

func TestSaveAndGetProducts(t *testing.T) {
	st := newTestStore(t)

	_, ok := st.GetProducts()
	assert.False(t, ok, "fresh store must have no catalog")

	require.NoError(t, st.SaveProducts(sampleProducts()))

	products, ok := st.GetProducts()
	require.True(t, ok)
	require.Len(t, products, 2)
	assert.Equal(t, "Ajvar", products[0].Name)
	assert.Equal(t, []string{"tea.jpg"}, products[1].Images)

	assert.Greater(t, st.SavedAt(), int64(0))
}

func TestProductsSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := NewCatalogStore(dir, "https://example.com/catalog")
	require.NoError(t, err)
	require.NoError(t, st.SaveProducts(sampleProducts()))
	require.NoError(t, st.Close())

	st2, err := NewCatalogStore(dir, "https://example.com/catalog")
	require.NoError(t, err)
	defer st2.Close()

	products, ok := st2.GetProducts()
	require.True(t, ok)
	assert.Len(t, products, 2)
}

func TestStoreIsScopedBySourceURL(t *testing.T) {
	dir := t.TempDir()

	st, err := NewCatalogStore(dir, "https://one.example.com")
	require.NoError(t, err)
	require.NoError(t, st.SaveProducts(sampleProducts()))
	require.NoError(t, st.Close())

	// A different source URL gets its own db file.
	other, err := NewCatalogStore(dir, "https://two.example.com")
	require.NoError(t, err)
	defer other.Close()

	_, ok := other.GetProducts()
	assert.False(t, ok)
}

func TestKeyValue(t *testing.T) {
	st := newTestStore(t)

	_, ok := st.GetValue("last_category")
	assert.False(t, ok)

	require.NoError(t, st.SetValue("last_category", "serbia"))

	v, ok := st.GetValue("last_category")
	require.True(t, ok)
	assert.Equal(t, "serbia", v)

	// Overwrite wins.
	require.NoError(t, st.SetValue("last_category", "china"))
	v, _ = st.GetValue("last_category")
	assert.Equal(t, "china", v)
}

func TestSaveContact(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveContact("id-1", []byte(`{"name":"Mira"}`)))
}

func TestMemoryOnlyMode(t *testing.T) {
	st, err := NewCatalogStore("", "")
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.SaveProducts(sampleProducts()))
	products, ok := st.GetProducts()
	require.True(t, ok)
	assert.Len(t, products, 2)

	require.NoError(t, st.SetValue("k", "v"))
	v, ok := st.GetValue("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestInvalidateAll(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SaveProducts(sampleProducts()))
	require.NoError(t, st.SetValue("k", "v"))

	st.InvalidateAll()

	_, ok := st.GetProducts()
	assert.False(t, ok)
	_, ok = st.GetValue("k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), st.SavedAt())
}
