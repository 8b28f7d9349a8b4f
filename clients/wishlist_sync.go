package clients

import (
	"context"
	"sort"
	"sync"
)

// WishlistSync mirrors the set of product ids the shopper has saved. Toggles
// are applied locally before the server answers and undone if it fails.
type WishlistSync struct {
	api     *APIClient
	session *Session

	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewWishlistSync(api *APIClient, session *Session) *WishlistSync {
	return &WishlistSync{api: api, session: session, ids: map[string]struct{}{}}
}

// Refresh replaces the local set with the server's. Anonymous sessions have
// an empty wishlist.
func (w *WishlistSync) Refresh(ctx context.Context) error {
	if !w.session.Authenticated() {
		w.replace(nil)
		return nil
	}
	ids, err := w.api.WishlistIDs(ctx)
	if err != nil {
		return err
	}
	w.replace(ids)
	return nil
}

// ToggleWishlist flips productID locally, then asks the server to do the
// same. On failure the product's previous membership is restored.
func (w *WishlistSync) ToggleWishlist(ctx context.Context, productID string) Result {
	if !w.session.Authenticated() {
		return failed(FailureUnauthenticated, "Please sign in to save items")
	}

	w.mu.Lock()
	_, was := w.ids[productID]
	w.set(productID, !was)
	w.mu.Unlock()

	resp, err := w.api.ToggleWishlist(ctx, productID)
	if err != nil {
		w.mu.Lock()
		w.set(productID, was)
		w.mu.Unlock()
		return failure(err, "Failed to update wishlist")
	}
	return Result{Success: true, Action: resp.Action, IsWishlisted: resp.IsWishlisted}
}

func (w *WishlistSync) IsWishlisted(productID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.ids[productID]
	return ok
}

// WishlistedIDs returns the saved product ids in sorted order.
func (w *WishlistSync) WishlistedIDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// set must be called with mu held.
func (w *WishlistSync) set(productID string, member bool) {
	if member {
		w.ids[productID] = struct{}{}
	} else {
		delete(w.ids, productID)
	}
}

func (w *WishlistSync) replace(ids []string) {
	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		next[id] = struct{}{}
	}
	w.mu.Lock()
	w.ids = next
	w.mu.Unlock()
}
