// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/joanie-store/storefront/database"
	"github.com/joanie-store/storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database that lives for the duration of t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every pooled connection would get its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Catalog holds the two products most tests need.
type Catalog struct {
	// Regular is listed at 160 with no sale price.
	Regular models.Product
	// Sale is listed at 1160 and sells for 960.
	Sale models.Product
}

// SeedCatalog inserts a regular and an on-sale product.
func SeedCatalog(t *testing.T, db *gorm.DB) Catalog {
	t.Helper()

	now := time.Now()
	c := Catalog{
		Regular: models.Product{
			Name:        "HAVIT HV-G92 Gamepad",
			Price:       decimal.NewFromInt(160),
			Image:       "/images/shoe-1.png",
			Rating:      5,
			ReviewCount: 88,
			Category:    models.CategoryNewArrivals,
			CreatedAt:   now,
		},
		Sale: models.Product{
			Name:        "HAVIT HV-G92 Gamepad",
			Price:       decimal.NewFromInt(1160),
			SalePrice:   decimal.NewNullDecimal(decimal.NewFromInt(960)),
			Image:       "/images/shoe-4.png",
			Rating:      4,
			ReviewCount: 75,
			Category:    models.CategoryTrending,
			IsOnSale:    true,
			CreatedAt:   now.Add(-time.Second),
		},
	}
	require.NoError(t, db.Create(&c.Regular).Error)
	require.NoError(t, db.Create(&c.Sale).Error)
	return c
}

// SeedUser inserts a user with the given email and no usable password.
func SeedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Name: "Test Shopper", Password: "!"}
	require.NoError(t, db.Create(&u).Error)
	return u
}
