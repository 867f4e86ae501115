package domain

import "time"

// WishlistEntry records server-side wishlist membership of one product for
// one user. The remote service is the source of truth; the storefront only
// holds a cached snapshot.
type WishlistEntry struct {
	ProductID string    `json:"product_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// WishedIDs derives the set of wished product IDs from a wishlist snapshot.
// The set is always rebuilt from the snapshot, never mutated independently,
// so it cannot drift from the authoritative entries.
func WishedIDs(entries []WishlistEntry) map[string]struct{} {
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[e.ProductID] = struct{}{}
	}
	return ids
}
