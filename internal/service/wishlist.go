package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/utafrali/shopmobile/internal/backend"
	"github.com/utafrali/shopmobile/internal/domain"
	"github.com/utafrali/shopmobile/internal/event"
)

// WishlistService keeps a cached snapshot of the user's server-side
// wishlist. The remote service is the source of truth; the snapshot is
// replaced wholesale on load and after each successful add.
type WishlistService struct {
	backend   *backend.Client
	producer  *event.Producer
	logger    *slog.Logger
	userEmail string

	mu      sync.RWMutex
	entries []domain.WishlistEntry
	wished  map[string]struct{}

	// toggleMu serializes toggle operations end to end, so two concurrent
	// toggles of the same unwished product cannot both issue the add.
	toggleMu sync.Mutex
}

// NewWishlistService creates a new wishlist service for the session user.
func NewWishlistService(client *backend.Client, producer *event.Producer, logger *slog.Logger, userEmail string) *WishlistService {
	return &WishlistService{
		backend:   client,
		producer:  producer,
		logger:    logger,
		userEmail: userEmail,
		entries:   []domain.WishlistEntry{},
		wished:    map[string]struct{}{},
	}
}

// Load fetches the full wishlist snapshot and replaces the cached one. On
// failure the cached snapshot is left unchanged and the error is returned;
// callers on the read path log it and keep serving the previous snapshot.
func (s *WishlistService) Load(ctx context.Context) error {
	entries, err := s.backend.GetWishlist(ctx, s.userEmail)
	if err != nil {
		return fmt.Errorf("load wishlist: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.wished = domain.WishedIDs(entries)
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "wishlist snapshot refreshed",
		slog.Int("entries", len(entries)),
	)

	return nil
}

// Contains reports whether the product is in the cached snapshot. It is a
// pure synchronous lookup against the derived ID set.
func (s *WishlistService) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.wished[productID]
	return ok
}

// Toggle adds the product to the wishlist. Toggling is add-only and
// idempotent: if the product is already a member the call is a no-op and no
// request is issued. On a successful add the snapshot is refreshed from the
// backend. The returned error exists for observability; the HTTP surface
// swallows it, since wishlist state is presentation-facing, not data of
// record.
func (s *WishlistService) Toggle(ctx context.Context, productID string) error {
	s.toggleMu.Lock()
	defer s.toggleMu.Unlock()

	if s.Contains(productID) {
		return nil
	}

	if err := s.backend.AddWishlistEntry(ctx, s.userEmail, productID); err != nil {
		return fmt.Errorf("toggle wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistAdded(ctx, s.userEmail, productID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.added event",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("product_id", productID),
	)

	return s.Load(ctx)
}

// Entries returns a copy of the cached wishlist snapshot.
func (s *WishlistService) Entries() []domain.WishlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.WishlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
