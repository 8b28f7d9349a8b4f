package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/joanie-store/storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository defines data access for saved products.
type WishlistRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.WishlistItem, error)
	ProductIDs(ctx context.Context, userID string) ([]string, error)
	FindByID(ctx context.Context, id string) (*models.WishlistItem, error)
	Toggle(ctx context.Context, userID, productID string) (*models.ToggleResult, error)
	Delete(ctx context.Context, id string) error
}

// GormWishlistRepository implements WishlistRepository using GORM.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository.
func NewGormWishlistRepository(db *gorm.DB) WishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) FindByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	return items, nil
}

// ProductIDs returns only the product ids the user has saved.
func (r *GormWishlistRepository) ProductIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist product ids: %w", err)
	}
	return ids, nil
}

func (r *GormWishlistRepository) FindByID(ctx context.Context, id string) (*models.WishlistItem, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// Toggle removes the (user, product) entry if present and creates it otherwise.
// A create that loses a race against a concurrent toggle resolves as added.
func (r *GormWishlistRepository) Toggle(ctx context.Context, userID, productID string) (*models.ToggleResult, error) {
	var result *models.ToggleResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WishlistItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&models.WishlistItem{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			result = &models.ToggleResult{Action: models.WishlistRemoved, IsWishlisted: false}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		item := models.WishlistItem{UserID: userID, ProductID: productID}
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		result = &models.ToggleResult{Action: models.WishlistAdded, IsWishlisted: true}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to toggle wishlist item: %w", err)
		}
		result = &models.ToggleResult{Action: models.WishlistAdded, IsWishlisted: true}
	}

	if result.Action == models.WishlistAdded {
		var item models.WishlistItem
		err := r.db.WithContext(ctx).
			Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error
		if err != nil {
			return nil, translate(err)
		}
		result.Item = &item
	}
	return result, nil
}

func (r *GormWishlistRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.WishlistItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
