package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTimeout bounds a single catalog request.
const DefaultTimeout = 10 * time.Second

// Image is a product picture reference.
type Image struct {
	URL string `json:"image"`
}

// Product is the slice of a catalog entry the carousel shows.
type Product struct {
	ID     string          `json:"_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Rating float64         `json:"rating"`
	Images []Image         `json:"images"`
}

// Source lists products of a category.
type Source interface {
	Products(ctx context.Context, category string) ([]Product, error)
}

// HTTPClient reads products from the storefront API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type productsResponse struct {
	Products []Product `json:"products"`
}

// NewHTTPClient validates the base URL and applies timeout, DefaultTimeout when zero.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("catalog url must be absolute")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Products issues GET /api/v1/products?categories=<category>.
func (c *HTTPClient) Products(ctx context.Context, category string) ([]Product, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/v1/products")
	if category != "" {
		q := endpoint.Query()
		q.Set("categories", category)
		endpoint.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("catalog request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("catalog error: %s", resp.Status)
	}

	var data productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if data.Products == nil {
		data.Products = []Product{}
	}
	return data.Products, nil
}
