package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/shopmobile/internal/backend"
	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/internal/event"
	"github.com/utafrali/shopmobile/internal/service"
	"github.com/utafrali/shopmobile/pkg/health"
	"github.com/utafrali/shopmobile/pkg/httpclient"
	"github.com/utafrali/shopmobile/pkg/httputil"
)

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeBackend serves the catalog/wishlist/order API the storefront talks to.
type fakeBackend struct {
	*httptest.Server

	products   []domain.Product
	categories []domain.Category
	wishlist   []domain.WishlistEntry
	orderCode  int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{
		products:   []domain.Product{},
		categories: []domain.Category{},
		wishlist:   []domain.WishlistEntry{},
		orderCode:  http.StatusCreated,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeItems(t, w, fb.categories)
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeItems(t, w, fb.products)
	})
	mux.HandleFunc("GET /api/wishlist", func(w http.ResponseWriter, r *http.Request) {
		writeItems(t, w, fb.wishlist)
	})
	mux.HandleFunc("POST /api/wishlist", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserEmail string `json:"user_email"`
			ProductID string `json:"product_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fb.wishlist = append(fb.wishlist, domain.WishlistEntry{
			ProductID: body.ProductID,
			UserEmail: body.UserEmail,
			CreatedAt: time.Now().UTC(),
		})
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		if fb.orderCode >= 400 {
			w.WriteHeader(fb.orderCode)
			_, _ = w.Write([]byte(`{"error":{"code":"ORDER_REJECTED","message":"invalid order"}}`))
			return
		}
		w.WriteHeader(fb.orderCode)
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Close)
	return fb
}

func writeItems(t *testing.T, w http.ResponseWriter, items any) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"items": items}))
}

type testEnv struct {
	backend *fakeBackend
	router  http.Handler
	cart    *service.CartService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()
	fb := newFakeBackend(t)

	client := backend.NewClient(httpclient.New(httpclient.DefaultConfig()), fb.URL, logger)
	events := event.NewProducer(nil, logger)

	catalog := service.NewCatalogService(client, logger, time.Minute)
	cart := service.NewCartService(events, logger, "demo@shop.com")
	wishlist := service.NewWishlistService(client, events, logger, "demo@shop.com")
	orders := service.NewOrderService(client, cart, events, logger, "demo@shop.com", "Demo Address", "cod")

	handler := NewStorefrontHandler(catalog, cart, wishlist, orders, logger)
	healthHandler := health.NewHandler()
	router := NewRouter(handler, healthHandler, logger)

	return &testEnv{backend: fb, router: router, cart: cart}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ============================================================================
// Catalog endpoints
// ============================================================================

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	env.backend.categories = []domain.Category{{ID: "c-1", Name: "Shoes", Slug: "shoes"}}

	rec := env.do(t, http.MethodGet, "/api/v1/storefront/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	categories, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, categories, 1)
}

func TestSearchProducts(t *testing.T) {
	env := newTestEnv(t)
	env.backend.products = []domain.Product{{ID: "p-1", Title: "Sneakers", Price: 59.99, Category: "shoes"}}

	rec := env.do(t, http.MethodGet, "/api/v1/storefront/products?category=shoes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	products, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
}

// ============================================================================
// Cart endpoints
// ============================================================================

func TestGetCart_Empty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/storefront/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Empty(t, data["lines"])
	assert.Zero(t, data["total"])
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)

	body := AddToCartRequest{ProductID: "p-1", Title: "Sneakers", Price: 59.99}
	rec := env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.InDelta(t, 119.98, data["total"].(float64), 1e-9)
	assert.EqualValues(t, 2, data["item_count"])

	lines := data["lines"].([]any)
	require.Len(t, lines, 1)
}

func TestAddToCart_ValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", AddToCartRequest{Price: 10})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "ProductID")
}

func TestAddToCart_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/storefront/cart/items", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

// ============================================================================
// Wishlist endpoints
// ============================================================================

func TestGetWishlist(t *testing.T) {
	env := newTestEnv(t)
	env.backend.wishlist = []domain.WishlistEntry{{ProductID: "p-1", UserEmail: "demo@shop.com"}}

	rec := env.do(t, http.MethodGet, "/api/v1/storefront/wishlist", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	ids := data["product_ids"].([]any)
	require.Len(t, ids, 1)
	assert.Equal(t, "p-1", ids[0])
}

func TestToggleWishlist_AddsProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/storefront/wishlist/toggle", ToggleWishlistRequest{ProductID: "p-9"})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	ids := data["product_ids"].([]any)
	require.Len(t, ids, 1)
	assert.Equal(t, "p-9", ids[0])
}

func TestToggleWishlist_SecondToggleIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/storefront/wishlist/toggle", ToggleWishlistRequest{ProductID: "p-9"})
	rec := env.do(t, http.MethodPost, "/api/v1/storefront/wishlist/toggle", ToggleWishlistRequest{ProductID: "p-9"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.backend.wishlist, 1)
}

// ============================================================================
// Checkout
// ============================================================================

func TestCheckout_Success(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", AddToCartRequest{ProductID: "A", Title: "Product A", Price: 10.00})
	env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", AddToCartRequest{ProductID: "A", Title: "Product A", Price: 10.00})
	env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", AddToCartRequest{ProductID: "B", Title: "Product B", Price: 5.50})

	rec := env.do(t, http.MethodPost, "/api/v1/storefront/checkout", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.InDelta(t, 25.50, data["total"].(float64), 1e-9)
	assert.True(t, env.cart.Cart().IsEmpty())
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/storefront/checkout", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

func TestCheckout_RejectionPreservesCart(t *testing.T) {
	env := newTestEnv(t)
	env.backend.orderCode = http.StatusUnprocessableEntity

	env.do(t, http.MethodPost, "/api/v1/storefront/cart/items", AddToCartRequest{ProductID: "A", Title: "Product A", Price: 10.00})

	rec := env.do(t, http.MethodPost, "/api/v1/storefront/checkout", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ORDER_REJECTED", resp.Error.Code)
	assert.Equal(t, 1, env.cart.ItemCount())
}

// ============================================================================
// Health
// ============================================================================

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
