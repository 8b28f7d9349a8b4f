package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joanie-store/storefront/models"
)

// APIClient calls the storefront HTTP API on behalf of a Session.
type APIClient struct {
	baseURL string
	client  *http.Client
	session *Session
}

func NewAPIClient(baseURL string, timeout time.Duration, session *Session) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		session: session,
	}
}

func (a *APIClient) Do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (a *APIClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := a.Do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: email, Password: password}, &out)
	return &out, err
}

func (a *APIClient) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := a.Do(ctx, http.MethodPost, "/auth/register", req, &out)
	return &out, err
}

func (a *APIClient) Logout(ctx context.Context) error {
	return a.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (a *APIClient) Products(ctx context.Context, category models.Category) ([]models.Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}
	var out models.ProductsResponse
	if err := a.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (a *APIClient) Cart(ctx context.Context) (*models.CartView, error) {
	var out models.CartView
	if err := a.Do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddToCart sends quantity only when it is set, letting the server default it to 1.
func (a *APIClient) AddToCart(ctx context.Context, productID string, quantity *int) (*models.CartItem, error) {
	var out models.CartItemResponse
	err := a.Do(ctx, http.MethodPost, "/cart", models.AddToCartRequest{ProductID: productID, Quantity: quantity}, &out)
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

func (a *APIClient) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*models.CartItem, error) {
	var out models.CartItemResponse
	err := a.Do(ctx, http.MethodPatch, "/cart/"+url.PathEscape(itemID), models.UpdateQuantityRequest{Quantity: &quantity}, &out)
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

func (a *APIClient) RemoveCartItem(ctx context.Context, itemID string) error {
	return a.Do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), nil, nil)
}

func (a *APIClient) CartCount(ctx context.Context) (int, error) {
	var out models.CartCountResponse
	if err := a.Do(ctx, http.MethodGet, "/cart/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (a *APIClient) WishlistIDs(ctx context.Context) ([]string, error) {
	var out models.WishlistIDsResponse
	if err := a.Do(ctx, http.MethodGet, "/wishlist/ids", nil, &out); err != nil {
		return nil, err
	}
	return out.ProductIDs, nil
}

func (a *APIClient) ToggleWishlist(ctx context.Context, productID string) (*models.ToggleWishlistResponse, error) {
	var out models.ToggleWishlistResponse
	if err := a.Do(ctx, http.MethodPost, "/wishlist", models.ToggleWishlistRequest{ProductID: productID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
