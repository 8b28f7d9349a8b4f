package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem marks a product as saved by a user. Presence is the whole state.
type WishlistItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_user_product;index" json:"userId"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_items_user_product" json:"productId"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (w *WishlistItem) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// WishlistAction reports which way a toggle went.
type WishlistAction string

const (
	WishlistAdded   WishlistAction = "added"
	WishlistRemoved WishlistAction = "removed"
)

// ToggleResult is the outcome of a wishlist toggle on the server.
type ToggleResult struct {
	Action       WishlistAction
	IsWishlisted bool
	Item         *WishlistItem
}
