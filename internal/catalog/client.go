package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vitrinashop/vitrina/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Vitrina/1.0"
)

// Client fetches static product JSON documents over plain GET.
// It implements domain.CatalogSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// FetchCountry fetches products_<country>.json, a bare product array.
func (c *Client) FetchCountry(ctx context.Context, country string) ([]domain.Product, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/products_%s.json", country))
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		c.logger.Error("country document is not a product array", "country", country, "error", err)
		return nil, domain.ErrBadCatalogPayload
	}
	return products, nil
}

// FetchCombined fetches products.json, the single combined fallback
// document of the form {"products": [...]}.
func (c *Client) FetchCombined(ctx context.Context) ([]domain.Product, error) {
	body, err := c.doGet(ctx, "/products.json")
	if err != nil {
		return nil, err
	}

	var doc struct {
		Products []domain.Product `json:"products"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		c.logger.Error("combined document parse failed", "error", err)
		return nil, domain.ErrBadCatalogPayload
	}
	if doc.Products == nil {
		return nil, domain.ErrBadCatalogPayload
	}
	return doc.Products, nil
}

// doGet performs one plain GET request against the catalog base URL.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "url", reqURL, "error", err)
		return nil, domain.ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "url", reqURL, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	return body, nil
}
