package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the catalog/order backend. All request and response bodies
// are JSON; list responses arrive in an {items: [...]} envelope where a
// missing items field means an empty collection.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a backend client rooted at the given base URL.
func NewClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// itemsEnvelope is the {items: [...]} wrapper used by all backend list
// responses.
type itemsEnvelope[T any] struct {
	Items []T `json:"items"`
}

// ListCategories fetches all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return getItems[domain.Category](ctx, c, c.baseURL+"/api/categories", "categories")
}

// SearchProducts fetches the product collection matching the given filter
// criteria. Empty criteria fields are omitted from the query string.
func (c *Client) SearchProducts(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	if query := criteria.Encode(); query != "" {
		u += "?" + query
	}
	return getItems[domain.Product](ctx, c, u, "catalog")
}

// GetWishlist fetches the full wishlist snapshot for the given user.
func (c *Client) GetWishlist(ctx context.Context, userEmail string) ([]domain.WishlistEntry, error) {
	u := c.baseURL + "/api/wishlist?user_email=" + url.QueryEscape(userEmail)
	return getItems[domain.WishlistEntry](ctx, c, u, "wishlist")
}

// AddWishlistEntry records wishlist membership of the product for the user.
func (c *Client) AddWishlistEntry(ctx context.Context, userEmail, productID string) error {
	body := struct {
		UserEmail string `json:"user_email"`
		ProductID string `json:"product_id"`
	}{
		UserEmail: userEmail,
		ProductID: productID,
	}

	return c.post(ctx, c.baseURL+"/api/wishlist", body, "wishlist")
}

// PlaceOrder submits the order to the backend.
func (c *Client) PlaceOrder(ctx context.Context, order domain.Order) error {
	return c.post(ctx, c.baseURL+"/api/orders", order, "order")
}

// Ping checks backend reachability. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/categories", http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// getItems issues a GET and decodes an {items: [...]} envelope. A response
// without an items field yields an empty, non-nil slice.
func getItems[T any](ctx context.Context, c *Client, u, serviceName string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", serviceName, err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}

	var envelope itemsEnvelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", serviceName, err)
	}

	if envelope.Items == nil {
		return []T{}, nil
	}
	return envelope.Items, nil
}

// post marshals the body and issues a single POST, accepting 200/201/204.
func (c *Client) post(ctx context.Context, u string, body any, serviceName string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", serviceName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create %s request: %w", serviceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call %s: %w", serviceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		return httpclient.ParseResponseError(resp, serviceName)
	}
}
