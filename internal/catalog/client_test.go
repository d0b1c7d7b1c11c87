package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinashop/vitrina/internal/domain"
)

func TestFetchCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products_serbia.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`[{"id":"rs-1","name":"Ajvar","price":"450 RSD","images":["a.jpg","b.jpg"]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	products, err := client.FetchCountry(context.Background(), "serbia")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Ajvar", products[0].Name)
	assert.True(t, products[0].HasGallery())
}

func TestFetchCountryBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.FetchCountry(context.Background(), "serbia")
	assert.ErrorIs(t, err, domain.ErrBadCatalogPayload)
}

func TestFetchCountryServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.FetchCountry(context.Background(), "serbia")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFetchCountryUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewClient(srv.URL, nil)
	_, err := client.FetchCountry(context.Background(), "serbia")
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestFetchCombined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		w.Write([]byte(`{"products":[{"id":"x-1","name":"Tea"},{"id":"x-2","name":"Silk"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	products, err := client.FetchCombined(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFetchCombinedMissingProductsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.FetchCombined(context.Background())
	assert.ErrorIs(t, err, domain.ErrBadCatalogPayload)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products.json", r.URL.Path)
		w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", nil)
	products, err := client.FetchCombined(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
