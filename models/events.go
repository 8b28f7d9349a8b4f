package models

import "time"

// Event types published on the storefront SNS topic.
const (
	EventCartItemAdded       = "cart.item_added"
	EventCartItemUpdated     = "cart.item_updated"
	EventCartItemRemoved     = "cart.item_removed"
	EventWishlistItemAdded   = "wishlist.item_added"
	EventWishlistItemRemoved = "wishlist.item_removed"
)

// StorefrontEvent describes a cart or wishlist mutation.
type StorefrontEvent struct {
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
