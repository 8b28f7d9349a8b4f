package services

import (
	"context"
	"errors"

	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"

	"go.uber.org/zap"
)

// WishlistService owns the server side of the wishlist.
type WishlistService interface {
	ListItems(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError)
	// ProductIDs never fails. Anonymous callers and lookup errors both get an empty list.
	ProductIDs(ctx context.Context, userID string) []string
	Toggle(ctx context.Context, userID, productID string) (*models.ToggleResult, *ServiceError)
	RemoveItem(ctx context.Context, userID, itemID string) *ServiceError
}

type wishlistServiceImpl struct {
	wishlists repository.WishlistRepository
	products  repository.ProductRepository
	events    *EventPublisher
	logger    *zap.Logger
}

func NewWishlistService(wishlists repository.WishlistRepository, products repository.ProductRepository, events *EventPublisher, logger *zap.Logger) WishlistService {
	return &wishlistServiceImpl{wishlists: wishlists, products: products, events: events, logger: logger}
}

func (s *wishlistServiceImpl) ListItems(ctx context.Context, userID string) ([]models.WishlistItem, *ServiceError) {
	if userID == "" {
		return nil, unauthorized()
	}
	items, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch wishlist", err)
	}
	return items, nil
}

func (s *wishlistServiceImpl) ProductIDs(ctx context.Context, userID string) []string {
	if userID == "" {
		return []string{}
	}
	ids, err := s.wishlists.ProductIDs(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to fetch wishlist ids", zap.String("user_id", userID), zap.Error(err))
		return []string{}
	}
	return ids
}

// Toggle flips whether productID is on the user's wishlist.
func (s *wishlistServiceImpl) Toggle(ctx context.Context, userID, productID string) (*models.ToggleResult, *ServiceError) {
	if userID == "" {
		return nil, unauthorized()
	}
	if productID == "" {
		return nil, badRequest("Product ID required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to look up product", zap.String("product_id", productID), zap.Error(err))
		return nil, internal("Failed to update wishlist", err)
	}

	result, err := s.wishlists.Toggle(ctx, userID, productID)
	if err != nil {
		s.logger.Error("Failed to update wishlist",
			zap.String("user_id", userID),
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, internal("Failed to update wishlist", err)
	}

	eventType := models.EventWishlistItemRemoved
	if result.Action == models.WishlistAdded {
		eventType = models.EventWishlistItemAdded
	}
	s.events.Publish(ctx, models.StorefrontEvent{EventType: eventType, UserID: userID, ProductID: productID})
	return result, nil
}

func (s *wishlistServiceImpl) RemoveItem(ctx context.Context, userID, itemID string) *ServiceError {
	if userID == "" {
		return unauthorized()
	}

	item, err := s.wishlists.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Item not found")
		}
		s.logger.Error("Failed to load wishlist item", zap.String("item_id", itemID), zap.Error(err))
		return internal("Failed to remove from wishlist", err)
	}
	if item.UserID != userID {
		return notFound("Item not found")
	}

	if err := s.wishlists.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Item not found")
		}
		s.logger.Error("Failed to remove from wishlist", zap.String("item_id", itemID), zap.Error(err))
		return internal("Failed to remove from wishlist", err)
	}

	s.events.Publish(ctx, models.StorefrontEvent{
		EventType: models.EventWishlistItemRemoved,
		UserID:    userID,
		ProductID: item.ProductID,
		ItemID:    item.ID,
	})
	return nil
}
