package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a user's cart. A user holds at most one line per product;
// the composite unique index enforces it.
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product;index" json:"userId"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product" json:"productId"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (i *CartItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// LineTotal is the effective unit price times the quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartView is the full cart as returned by GET /cart.
type CartView struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// NewCartView derives the aggregates from the given lines.
func NewCartView(items []CartItem) CartView {
	if items == nil {
		items = []CartItem{}
	}
	view := CartView{Items: items, TotalPrice: decimal.Zero}
	for _, item := range items {
		view.TotalItems += item.Quantity
		view.TotalPrice = view.TotalPrice.Add(item.LineTotal())
	}
	return view
}
