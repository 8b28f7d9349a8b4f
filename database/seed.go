package database

import (
	"context"
	"fmt"
	"time"

	"github.com/joanie-store/storefront/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogProducts returns the eight demo products the storefront ships with:
// four new arrivals and four trending items, three of them on sale.
func CatalogProducts(now time.Time) []models.Product {
	regular := func(image string, category models.Category) models.Product {
		return models.Product{
			Name:        "HAVIT HV-G92 Gamepad",
			Price:       decimal.NewFromInt(160),
			Image:       image,
			Rating:      5.0,
			ReviewCount: 88,
			Category:    category,
		}
	}
	sale := func(image string, category models.Category) models.Product {
		return models.Product{
			Name:        "HAVIT HV-G92 Gamepad",
			Price:       decimal.NewFromInt(1160),
			SalePrice:   decimal.NewNullDecimal(decimal.NewFromInt(960)),
			Image:       image,
			Rating:      4.0,
			ReviewCount: 75,
			Category:    category,
			IsOnSale:    true,
		}
	}

	products := []models.Product{
		regular("/images/shoe-1.png", models.CategoryNewArrivals),
		regular("/images/shoe-2.png", models.CategoryNewArrivals),
		regular("/images/shoe-3.png", models.CategoryNewArrivals),
		sale("/images/shoe-4.png", models.CategoryNewArrivals),
		regular("/images/shoe-5.png", models.CategoryTrending),
		sale("/images/shoe-6.png", models.CategoryTrending),
		regular("/images/shoe-7.png", models.CategoryTrending),
		sale("/images/shoe-8.png", models.CategoryTrending),
	}
	// Listing is newest first, so stagger timestamps to keep shoe-1 on top.
	for i := range products {
		products[i].CreatedAt = now.Add(-time.Duration(i) * time.Second)
		products[i].UpdatedAt = products[i].CreatedAt
	}
	return products
}

// Seed wipes the catalog along with every cart and wishlist line, then
// inserts products, all in one transaction. Accounts survive unless
// keepUsers is false.
func Seed(ctx context.Context, db *gorm.DB, products []models.Product, keepUsers bool) (int, error) {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("invalid seed product %q: %w", p.Image, err)
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		wipe := []interface{}{&models.WishlistItem{}, &models.CartItem{}, &models.Product{}}
		if !keepUsers {
			wipe = append(wipe, &models.User{})
		}
		for _, model := range wipe {
			if err := all.Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).CreateInBatches(products, 100).Error
	})
	if err != nil {
		return 0, err
	}
	return len(products), nil
}
