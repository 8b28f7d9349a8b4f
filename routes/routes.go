package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/controllers"
	"github.com/joanie-store/storefront/middleware"
)

// Handlers bundles the controllers the storefront API exposes.
type Handlers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Auth     *controllers.AuthController
}

// Register mounts every storefront route on r. Session resolution runs on all
// of them; only routes that need a user add RequireUser. authLimit, when not
// nil, guards the credential endpoints.
func Register(r *gin.Engine, h Handlers, tokens middleware.TokenValidator, authLimit gin.HandlerFunc) {
	api := r.Group("")
	api.Use(middleware.Session(tokens))

	RegisterProductRoutes(api, h.Products)
	RegisterCartRoutes(api, h.Cart)
	RegisterWishlistRoutes(api, h.Wishlist)
	RegisterAuthRoutes(api, h.Auth, authLimit)
}

func RegisterProductRoutes(r *gin.RouterGroup, pc *controllers.ProductController) {
	productRoutes := r.Group("/products")
	productRoutes.GET("", pc.ListProducts)
	productRoutes.GET("/:id", pc.GetProduct)
}

func RegisterCartRoutes(r *gin.RouterGroup, cc *controllers.CartController) {
	cartRoutes := r.Group("/cart")

	// Safe for anonymous callers.
	cartRoutes.GET("/count", cc.Count)

	protected := cartRoutes.Group("")
	protected.Use(middleware.RequireUser())
	protected.GET("", cc.GetCart)
	protected.POST("", cc.AddItem)
	protected.PATCH("/:id", cc.UpdateQuantity)
	protected.DELETE("/:id", cc.RemoveItem)
}

func RegisterWishlistRoutes(r *gin.RouterGroup, wc *controllers.WishlistController) {
	wishlistRoutes := r.Group("/wishlist")

	// Safe for anonymous callers.
	wishlistRoutes.GET("/ids", wc.ProductIDs)

	protected := wishlistRoutes.Group("")
	protected.Use(middleware.RequireUser())
	protected.GET("", wc.GetWishlist)
	protected.POST("", wc.Toggle)
	protected.DELETE("/:id", wc.RemoveItem)
}

func RegisterAuthRoutes(r *gin.RouterGroup, ac *controllers.AuthController, authLimit gin.HandlerFunc) {
	authRoutes := r.Group("/auth")
	authRoutes.GET("/session", ac.Session)
	authRoutes.POST("/logout", ac.Logout)

	credentials := authRoutes.Group("")
	if authLimit != nil {
		credentials.Use(authLimit)
	}
	credentials.POST("/register", ac.Register)
	credentials.POST("/login", ac.Login)
}
