package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/internal/event"
	apperrors "github.com/utafrali/shopmobile/pkg/errors"
)

// CartService holds the session-local cart. The cart never leaves the
// process: it is created empty at startup and cleared only after a confirmed
// order placement. There is no line removal or quantity decrement.
type CartService struct {
	producer  *event.Producer
	logger    *slog.Logger
	userEmail string

	mu   sync.Mutex
	cart domain.Cart
}

// NewCartService creates a new cart service for the session user.
func NewCartService(producer *event.Producer, logger *slog.Logger, userEmail string) *CartService {
	return &CartService{
		producer:  producer,
		logger:    logger,
		userEmail: userEmail,
	}
}

// Add merges the product into the cart: a repeated add of the same product
// ID increments the existing line's quantity, a new product appends a line
// with quantity 1. The updated cart is returned.
func (s *CartService) Add(ctx context.Context, p domain.Product) (domain.Cart, error) {
	if p.ID == "" {
		return domain.Cart{}, apperrors.InvalidInput("product id is required")
	}
	if p.Price < 0 {
		return domain.Cart{}, apperrors.InvalidInput("price must not be negative")
	}

	s.mu.Lock()
	s.cart.Add(p)
	snapshot := s.cart.Clone()
	s.mu.Unlock()

	if err := s.producer.PublishCartUpdated(ctx, s.userEmail, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("product_id", p.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product added to cart",
		slog.String("product_id", p.ID),
		slog.Int("item_count", snapshot.ItemCount()),
	)

	return snapshot, nil
}

// Cart returns a copy of the current cart.
func (s *CartService) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Total recomputes the cart total from the current lines.
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// ItemCount returns the total number of units in the cart.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Clear empties the cart. Only the order submitter calls this, after the
// backend has confirmed order acceptance.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "cart cleared")
}
