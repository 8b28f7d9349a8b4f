package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/middleware"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/services"
)

var wishlistFieldMessages = map[string]string{
	"productId": "Product ID required",
}

// WishlistController handles HTTP requests for saved products.
type WishlistController struct {
	wishlistService services.WishlistService
}

func NewWishlistController(wishlistService services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// GetWishlist handles GET /wishlist.
func (wc *WishlistController) GetWishlist(ctx *gin.Context) {
	items, svcErr := wc.wishlistService.ListItems(ctx.Request.Context(), middleware.UserID(ctx))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.WishlistResponse{Items: items})
}

// ProductIDs handles GET /wishlist/ids. Anonymous callers get an empty list.
func (wc *WishlistController) ProductIDs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.WishlistIDsResponse{
		ProductIDs: wc.wishlistService.ProductIDs(ctx.Request.Context(), middleware.UserID(ctx)),
	})
}

// Toggle handles POST /wishlist.
func (wc *WishlistController) Toggle(ctx *gin.Context) {
	var req models.ToggleWishlistRequest
	if err := bindStrictJSON(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindError(err, wishlistFieldMessages)})
		return
	}

	result, svcErr := wc.wishlistService.Toggle(ctx.Request.Context(), middleware.UserID(ctx), req.ProductID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.ToggleWishlistResponse{
		Success:      true,
		Action:       result.Action,
		IsWishlisted: result.IsWishlisted,
		Item:         result.Item,
	})
}

// RemoveItem handles DELETE /wishlist/:id.
func (wc *WishlistController) RemoveItem(ctx *gin.Context) {
	if svcErr := wc.wishlistService.RemoveItem(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
