package repository

import (
	"context"
	"fmt"

	"github.com/joanie-store/storefront/models"

	"gorm.io/gorm"
)

// ProductRepository reads the product catalog.
type ProductRepository interface {
	FindAll(ctx context.Context, category models.Category) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// FindAll lists products newest first. An empty category lists every product.
func (r *GormProductRepository) FindAll(ctx context.Context, category models.Category) ([]models.Product, error) {
	products := []models.Product{}
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var p models.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
