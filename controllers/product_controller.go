package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/services"
)

type ProductController struct {
	productService services.ProductService
}

func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /products?category=.
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	var query models.ProductQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	products, svcErr := pc.productService.ListProducts(ctx.Request.Context(), models.Category(query.Category))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.ProductsResponse{Products: products})
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(ctx *gin.Context) {
	product, svcErr := pc.productService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	ctx.JSON(http.StatusOK, models.ProductResponse{Product: product})
}
