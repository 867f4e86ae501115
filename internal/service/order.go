package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/utafrali/shopmobile/internal/backend"
	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/internal/event"
	apperrors "github.com/utafrali/shopmobile/pkg/errors"
)

// OrderService turns the current cart into an order and submits it. At most
// one submission is in flight at a time; the in-progress guard is enforced
// here rather than left to callers.
type OrderService struct {
	backend  *backend.Client
	cart     *CartService
	producer *event.Producer
	logger   *slog.Logger

	userEmail       string
	shippingAddress string
	paymentMethod   string

	mu         sync.Mutex
	submitting bool
}

// NewOrderService creates a new order service. The shipping address and
// payment method are fixed session attributes, not captured per order.
func NewOrderService(client *backend.Client, cart *CartService, producer *event.Producer, logger *slog.Logger, userEmail, shippingAddress, paymentMethod string) *OrderService {
	return &OrderService{
		backend:         client,
		cart:            cart,
		producer:        producer,
		logger:          logger,
		userEmail:       userEmail,
		shippingAddress: shippingAddress,
		paymentMethod:   paymentMethod,
	}
}

// PlaceOrder snapshots the cart, submits it as an order, and clears the cart
// once the backend confirms acceptance. An empty cart is rejected before any
// request is made. A concurrent submission attempt while one is in flight
// returns a conflict. On submission failure the cart is preserved so the
// caller can retry.
func (s *OrderService) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	snapshot := s.cart.Cart()
	if snapshot.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, apperrors.Conflict("order submission already in progress")
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	order := domain.BuildOrder(snapshot, s.userEmail, s.shippingAddress, s.paymentMethod)

	if err := s.backend.PlaceOrder(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.Int("item_count", snapshot.ItemCount()),
			slog.Float64("total", order.Total),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.cart.Clear(ctx)

	if err := s.producer.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.Int("lines", len(order.Items)),
		slog.Float64("total", order.Total),
	)

	return &order, nil
}

// Submitting reports whether an order submission is currently in flight.
func (s *OrderService) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
