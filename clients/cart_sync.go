package clients

import (
	"context"
	"sync"

	"github.com/joanie-store/storefront/models"

	"github.com/shopspring/decimal"
)

// CartSync mirrors the signed-in shopper's cart. Mutations go to the server
// first; local state only ever changes by re-fetching, so it never shows a
// line the server has not stored.
type CartSync struct {
	api     *APIClient
	session *Session

	mu         sync.RWMutex
	items      []models.CartItem
	totalItems int
	totalPrice decimal.Decimal
}

func NewCartSync(api *APIClient, session *Session) *CartSync {
	return &CartSync{api: api, session: session, items: []models.CartItem{}, totalPrice: decimal.Zero}
}

// FetchCart replaces local state with the server's cart, or empties it for an
// anonymous session. On error the previous state is kept.
func (c *CartSync) FetchCart(ctx context.Context) error {
	if !c.session.Authenticated() {
		c.replace(models.NewCartView(nil))
		return nil
	}
	view, err := c.api.Cart(ctx)
	if err != nil {
		return err
	}
	c.replace(models.NewCartView(view.Items))
	return nil
}

// AddToCart adds quantity of productID. A quantity of 0 lets the server use
// its default of 1.
func (c *CartSync) AddToCart(ctx context.Context, productID string, quantity int) Result {
	if !c.session.Authenticated() {
		return failed(FailureUnauthenticated, "Please sign in to add items to cart")
	}

	var q *int
	if quantity != 0 {
		q = &quantity
	}
	item, err := c.api.AddToCart(ctx, productID, q)
	if err != nil {
		return failure(err, "Failed to add to cart")
	}

	// The line is stored; a failed refresh only leaves the mirror stale.
	_ = c.FetchCart(ctx)
	return Result{Success: true, Item: item}
}

// UpdateQuantity sets the exact quantity of one cart line and re-fetches on success.
func (c *CartSync) UpdateQuantity(ctx context.Context, itemID string, quantity int) Result {
	if _, err := c.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
		return failure(err, "Failed to update quantity")
	}
	_ = c.FetchCart(ctx)
	return Result{Success: true}
}

// RemoveFromCart deletes one cart line and re-fetches on success.
func (c *CartSync) RemoveFromCart(ctx context.Context, itemID string) Result {
	if err := c.api.RemoveCartItem(ctx, itemID); err != nil {
		return failure(err, "Failed to remove from cart")
	}
	_ = c.FetchCart(ctx)
	return Result{Success: true}
}

// Items returns a copy of the mirrored lines.
func (c *CartSync) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CartSync) TotalItems() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalItems
}

func (c *CartSync) TotalPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalPrice
}

func (c *CartSync) replace(view models.CartView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = view.Items
	c.totalItems = view.TotalItems
	c.totalPrice = view.TotalPrice
}
