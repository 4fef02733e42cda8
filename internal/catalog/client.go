package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrProductNotFound is returned when the collaborator has no product
// with the requested ID.
var ErrProductNotFound = errors.New("product not found")

// Client talks to the external product collaborator over JSON/HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "catalog"),
	}
}

// List fetches products, optionally filtered by category. The read path
// used by search and the category pages.
func (c *Client) List(ctx context.Context, category string) ([]Product, error) {
	endpoint := c.baseURL + "/products"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var wire []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	products := make([]Product, len(wire))
	for i, w := range wire {
		products[i] = w.normalize()
	}
	return products, nil
}

// Create adds a product through the collaborator. Admin passthrough.
func (c *Client) Create(ctx context.Context, p Product) (*Product, error) {
	return c.send(ctx, http.MethodPost, c.baseURL+"/products", &p)
}

// Update replaces a product through the collaborator. Admin passthrough.
func (c *Client) Update(ctx context.Context, p Product) (*Product, error) {
	return c.send(ctx, http.MethodPut, c.baseURL+"/products/"+url.PathEscape(p.ID), &p)
}

// Delete removes a product through the collaborator. Admin passthrough.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrProductNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, p *Product) (*Product, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrProductNotFound
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var wire wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	normalized := wire.normalize()
	return &normalized, nil
}
