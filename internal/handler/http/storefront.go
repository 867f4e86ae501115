package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/internal/service"
	"github.com/utafrali/shopmobile/pkg/httputil"
	"github.com/utafrali/shopmobile/pkg/validator"
)

// StorefrontHandler handles HTTP requests for the storefront session API.
type StorefrontHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	wishlist *service.WishlistService
	orders   *service.OrderService
	logger   *slog.Logger
}

// NewStorefrontHandler creates a new storefront HTTP handler.
func NewStorefrontHandler(
	catalog *service.CatalogService,
	cart *service.CartService,
	wishlist *service.WishlistService,
	orders *service.OrderService,
	logger *slog.Logger,
) *StorefrontHandler {
	return &StorefrontHandler{
		catalog:  catalog,
		cart:     cart,
		wishlist: wishlist,
		orders:   orders,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddToCartRequest is the JSON request body for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Title     string  `json:"title" validate:"required,min=1,max=500"`
	Price     float64 `json:"price" validate:"gte=0"`
	Category  string  `json:"category"`
	Brand     string  `json:"brand"`
	Image     string  `json:"image"`
}

// ToggleWishlistRequest is the JSON request body for toggling wishlist
// membership.
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// --- Response DTOs ---

// CartView is the cart representation returned to clients. The total and
// item count are derived from the lines on every read.
type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
}

// WishlistView pairs the wishlist entries with the derived membership set.
type WishlistView struct {
	Entries    []domain.WishlistEntry `json:"entries"`
	ProductIDs []string               `json:"product_ids"`
}

func cartView(cart domain.Cart) CartView {
	return CartView{
		Lines:     cart.Lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}
}

func (h *StorefrontHandler) wishlistView() WishlistView {
	entries := h.wishlist.Entries()
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	return WishlistView{Entries: entries, ProductIDs: ids}
}

// --- Handlers ---

// ListCategories handles GET /api/v1/storefront/categories
func (h *StorefrontHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// SearchProducts handles GET /api/v1/storefront/products. Filter criteria
// come from the query string; empty parameters are treated as absent.
func (h *StorefrontHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := domain.FilterCriteria{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
	}

	products := h.catalog.Search(r.Context(), criteria)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetCart handles GET /api/v1/storefront/cart
func (h *StorefrontHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartView(h.cart.Cart())})
}

// AddToCart handles POST /api/v1/storefront/cart/items
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product := domain.Product{
		ID:       req.ProductID,
		Title:    req.Title,
		Price:    req.Price,
		Category: req.Category,
		Brand:    req.Brand,
		Image:    req.Image,
	}

	cart, err := h.cart.Add(r.Context(), product)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartView(cart)})
}

// GetWishlist handles GET /api/v1/storefront/wishlist. It serves the cached
// snapshot after attempting a refresh; a failed refresh only degrades
// freshness.
func (h *StorefrontHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Load(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "wishlist refresh failed, serving cached snapshot",
			slog.String("error", err.Error()),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.wishlistView()})
}

// ToggleWishlist handles POST /api/v1/storefront/wishlist/toggle. Toggle
// failures are logged but not surfaced; the response always carries the
// current snapshot.
func (h *StorefrontHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req ToggleWishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.wishlist.Toggle(r.Context(), req.ProductID); err != nil {
		h.logger.WarnContext(r.Context(), "wishlist toggle failed",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.wishlistView()})
}

// Checkout handles POST /api/v1/storefront/checkout
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.PlaceOrder(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}
