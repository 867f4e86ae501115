package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/shopmobile/internal/domain"
	pkgkafka "github.com/utafrali/shopmobile/pkg/kafka"
)

// Kafka topic constants for storefront activity events.
const (
	TopicCartUpdated   = "storefront.cart.updated"
	TopicWishlistAdded = "storefront.wishlist.added"
	TopicOrderPlaced   = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
	AggregateTypeOrder    = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	UserEmail string            `json:"user_email"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
}

// WishlistAddedData is the payload for a wishlist.added event.
type WishlistAddedData struct {
	UserEmail string `json:"user_email"`
	ProductID string `json:"product_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	UserEmail string  `json:"user_email"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// Producer publishes storefront activity events to Kafka. A Producer built
// with a nil Kafka producer discards events, so deployments without a broker
// still run.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	if p.kafka == nil {
		p.logger.DebugContext(ctx, "event publishing disabled, dropping event",
			slog.String("topic", topic),
			slog.String("event_type", event.EventType),
		)
		return nil
	}
	return p.kafka.Publish(ctx, topic, event)
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, userEmail string, cart domain.Cart) error {
	data := CartUpdatedData{
		UserEmail: userEmail,
		Lines:     cart.Lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, userEmail, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}
	return nil
}

// PublishWishlistAdded publishes a wishlist.added event.
func (p *Producer) PublishWishlistAdded(ctx context.Context, userEmail, productID string) error {
	data := WishlistAddedData{
		UserEmail: userEmail,
		ProductID: productID,
	}

	event, err := pkgkafka.NewEvent(TopicWishlistAdded, userEmail, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.added event: %w", err)
	}

	if err := p.publish(ctx, TopicWishlistAdded, event); err != nil {
		return fmt.Errorf("publish wishlist.added event: %w", err)
	}
	return nil
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	data := OrderPlacedData{
		UserEmail: order.UserEmail,
		ItemCount: itemCount,
		Total:     order.Total,
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, order.UserEmail, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}
	return nil
}
