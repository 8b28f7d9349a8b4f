package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/joanie-store/storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository defines data access for cart lines.
type CartRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	FindByID(ctx context.Context, id string) (*models.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	AddQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error)
	SetQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, id string) error
	SumQuantity(ctx context.Context, userID string) (int, error)
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser returns the user's lines with their products, newest first.
func (r *GormCartRepository) FindByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (r *GormCartRepository) FindByID(ctx context.Context, id string) (*models.CartItem, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *GormCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// AddQuantity creates the (user, product) line or increments the existing one in a
// single statement, so concurrent adds never produce a second row.
func (r *GormCartRepository) AddQuantity(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		}).
		Create(item).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart item: %w", translate(err))
	}
	return r.FindByUserAndProduct(ctx, userID, productID)
}

// SetQuantity overwrites the quantity of a line.
func (r *GormCartRepository) SetQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *GormCartRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SumQuantity totals the quantities of every line the user owns.
func (r *GormCartRepository) SumQuantity(ctx context.Context, userID string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return int(total), nil
}
