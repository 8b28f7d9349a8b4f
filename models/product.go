package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers, matching what the storefront front-end expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category groups products into the storefront home page tabs.
type Category string

const (
	CategoryNewArrivals Category = "new-arrivals"
	CategoryTrending    Category = "trending"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryNewArrivals || c == CategoryTrending
}

// Product is a catalog entry. It is read-only from the cart and wishlist side.
type Product struct {
	ID          string              `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string              `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"salePrice"`
	Image       string              `gorm:"type:varchar(512);not null" json:"image"`
	Rating      float64             `gorm:"not null;default:0" json:"rating"`
	ReviewCount int                 `gorm:"not null;default:0" json:"reviewCount"`
	Category    Category            `gorm:"type:varchar(32);not null;index" json:"category"`
	IsOnSale    bool                `gorm:"not null;default:false" json:"isOnSale"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice is the sale price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// Validate checks the catalog invariants on a product before it is stored.
func (p Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}
	if !p.Price.IsPositive() {
		return errors.New("product price must be positive")
	}
	if p.SalePrice.Valid && !p.SalePrice.Decimal.LessThan(p.Price) {
		return errors.New("sale price must be lower than price")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	if p.ReviewCount < 0 {
		return errors.New("review count cannot be negative")
	}
	if !p.Category.Valid() {
		return errors.New("unknown category")
	}
	return nil
}
