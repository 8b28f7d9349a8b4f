package models

// AddToCartRequest is the body of POST /cart. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateQuantityRequest is the body of PATCH /cart/:id.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=1"`
}

// ToggleWishlistRequest is the body of POST /wishlist.
type ToggleWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// ProductQuery holds the query string of GET /products.
type ProductQuery struct {
	Category string `form:"category" binding:"omitempty,category"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation that returns nothing else.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CartItemResponse is returned by POST /cart and PATCH /cart/:id.
type CartItemResponse struct {
	Success bool      `json:"success"`
	Item    *CartItem `json:"item"`
}

// CartCountResponse is returned by GET /cart/count.
type CartCountResponse struct {
	Count int `json:"count"`
}

// WishlistResponse is returned by GET /wishlist.
type WishlistResponse struct {
	Items []WishlistItem `json:"items"`
}

// WishlistIDsResponse is returned by GET /wishlist/ids.
type WishlistIDsResponse struct {
	ProductIDs []string `json:"productIds"`
}

// ToggleWishlistResponse is returned by POST /wishlist.
type ToggleWishlistResponse struct {
	Success      bool           `json:"success"`
	Action       WishlistAction `json:"action"`
	IsWishlisted bool           `json:"isWishlisted"`
	Item         *WishlistItem  `json:"item,omitempty"`
}

// ProductsResponse is returned by GET /products.
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// ProductResponse is returned by GET /products/:id.
type ProductResponse struct {
	Product *Product `json:"product"`
}

// SessionResponse is returned by GET /auth/session. User is nil for anonymous callers.
type SessionResponse struct {
	User *User `json:"user"`
}

// LoginResponse is returned by POST /auth/login and POST /auth/register.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
