package services

import (
	"context"
	"errors"

	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"

	"go.uber.org/zap"
)

// CartService owns the server side of the shopping cart. Every operation is
// scoped to the calling user; lines owned by someone else look missing.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.CartView, *ServiceError)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, *ServiceError)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, *ServiceError)
	RemoveItem(ctx context.Context, userID, itemID string) *ServiceError
	// Count never fails. Anonymous callers and lookup errors both count 0.
	Count(ctx context.Context, userID string) int
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	events   *EventPublisher
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, events *EventPublisher, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, events: events, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) (*models.CartView, *ServiceError) {
	if userID == "" {
		return nil, unauthorized()
	}
	items, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch cart", zap.String("user_id", userID), zap.Error(err))
		return nil, internal("Failed to fetch cart", err)
	}
	view := models.NewCartView(items)
	return &view, nil
}

// AddItem adds quantity of productID, merging into an existing line.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, *ServiceError) {
	if userID == "" {
		return nil, unauthorized()
	}
	if productID == "" {
		return nil, badRequest("Product ID required")
	}
	if quantity < 1 {
		return nil, badRequest("Valid quantity required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		s.logger.Error("Failed to look up product", zap.String("product_id", productID), zap.Error(err))
		return nil, internal("Failed to add to cart", err)
	}

	item, err := s.carts.AddQuantity(ctx, userID, productID, quantity)
	if err != nil {
		s.logger.Error("Failed to add to cart",
			zap.String("user_id", userID),
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, internal("Failed to add to cart", err)
	}

	s.logger.Info("Cart item added",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", item.Quantity))
	s.events.Publish(ctx, models.StorefrontEvent{
		EventType: models.EventCartItemAdded,
		UserID:    userID,
		ProductID: productID,
		ItemID:    item.ID,
		Quantity:  quantity,
	})
	return item, nil
}

// UpdateQuantity overwrites the quantity of one of the user's lines.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, *ServiceError) {
	if userID == "" {
		return nil, unauthorized()
	}
	if quantity < 1 {
		return nil, badRequest("Valid quantity required")
	}
	if _, svcErr := s.ownedItem(ctx, userID, itemID, "Failed to update cart"); svcErr != nil {
		return nil, svcErr
	}

	item, err := s.carts.SetQuantity(ctx, itemID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Item not found")
		}
		s.logger.Error("Failed to update cart", zap.String("item_id", itemID), zap.Error(err))
		return nil, internal("Failed to update cart", err)
	}

	s.events.Publish(ctx, models.StorefrontEvent{
		EventType: models.EventCartItemUpdated,
		UserID:    userID,
		ProductID: item.ProductID,
		ItemID:    item.ID,
		Quantity:  item.Quantity,
	})
	return item, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID string) *ServiceError {
	if userID == "" {
		return unauthorized()
	}
	item, svcErr := s.ownedItem(ctx, userID, itemID, "Failed to remove from cart")
	if svcErr != nil {
		return svcErr
	}

	if err := s.carts.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Item not found")
		}
		s.logger.Error("Failed to remove from cart", zap.String("item_id", itemID), zap.Error(err))
		return internal("Failed to remove from cart", err)
	}

	s.events.Publish(ctx, models.StorefrontEvent{
		EventType: models.EventCartItemRemoved,
		UserID:    userID,
		ProductID: item.ProductID,
		ItemID:    item.ID,
	})
	return nil
}

func (s *cartServiceImpl) Count(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}
	total, err := s.carts.SumQuantity(ctx, userID)
	if err != nil {
		s.logger.Warn("Failed to count cart items", zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	return total
}

// ownedItem loads itemID and hides it unless userID owns it.
func (s *cartServiceImpl) ownedItem(ctx context.Context, userID, itemID, failMsg string) (*models.CartItem, *ServiceError) {
	item, err := s.carts.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Item not found")
		}
		s.logger.Error("Failed to load cart item", zap.String("item_id", itemID), zap.Error(err))
		return nil, internal(failMsg, err)
	}
	if item.UserID != userID {
		return nil, notFound("Item not found")
	}
	return item, nil
}
