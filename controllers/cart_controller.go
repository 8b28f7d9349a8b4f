package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/middleware"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/services"
)

var cartFieldMessages = map[string]string{
	"productId": "Product ID required",
	"quantity":  "Valid quantity required",
}

// CartController handles HTTP requests for the shopping cart.
type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	view, svcErr := cc.cartService.GetCart(ctx.Request.Context(), middleware.UserID(ctx))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// AddItem handles POST /cart. An existing line for the product is incremented.
func (cc *CartController) AddItem(ctx *gin.Context) {
	var req models.AddToCartRequest
	if err := bindStrictJSON(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindError(err, cartFieldMessages)})
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, svcErr := cc.cartService.AddItem(ctx.Request.Context(), middleware.UserID(ctx), req.ProductID, quantity)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.CartItemResponse{Success: true, Item: item})
}

// UpdateQuantity handles PATCH /cart/:id.
func (cc *CartController) UpdateQuantity(ctx *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := bindStrictJSON(ctx, &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindError(err, cartFieldMessages)})
		return
	}

	item, svcErr := cc.cartService.UpdateQuantity(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), *req.Quantity)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.CartItemResponse{Success: true, Item: item})
}

// RemoveItem handles DELETE /cart/:id.
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	if svcErr := cc.cartService.RemoveItem(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Count handles GET /cart/count. Anonymous callers get 0.
func (cc *CartController) Count(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.CartCountResponse{
		Count: cc.cartService.Count(ctx.Request.Context(), middleware.UserID(ctx)),
	})
}
