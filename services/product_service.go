package services

import (
	"context"
	"errors"

	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"

	"go.uber.org/zap"
)

// ProductCache is the read-through cache in front of the catalog.
type ProductCache interface {
	GetList(ctx context.Context, category models.Category) ([]models.Product, bool)
	SetList(ctx context.Context, category models.Category, products []models.Product)
	GetProduct(ctx context.Context, id string) (*models.Product, bool)
	SetProduct(ctx context.Context, product *models.Product)
}

// ProductService serves the read-only catalog.
type ProductService interface {
	ListProducts(ctx context.Context, category models.Category) ([]models.Product, *ServiceError)
	GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	cache  ProductCache
	logger *zap.Logger
}

// NewProductService builds a ProductService. cache may be nil.
func NewProductService(repo repository.ProductRepository, cache ProductCache, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, cache: cache, logger: logger}
}

func (s *productServiceImpl) ListProducts(ctx context.Context, category models.Category) ([]models.Product, *ServiceError) {
	if category != "" && !category.Valid() {
		return nil, badRequest("Invalid category")
	}

	if s.cache != nil {
		if products, ok := s.cache.GetList(ctx, category); ok {
			return products, nil
		}
	}

	products, err := s.repo.FindAll(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list products", zap.String("category", string(category)), zap.Error(err))
		return nil, internal("Failed to fetch products", err)
	}

	if s.cache != nil {
		s.cache.SetList(ctx, category, products)
	}
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, id); ok {
			return product, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", id), zap.Error(err))
		return nil, internal("Failed to fetch product", err)
	}

	if s.cache != nil {
		s.cache.SetProduct(ctx, product)
	}
	return product, nil
}
