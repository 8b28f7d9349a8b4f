// Package clients keeps a shopper's cart and wishlist in sync with the
// storefront API.
package clients

import (
	"context"
	"time"

	"github.com/joanie-store/storefront/models"
)

// Storefront ties one Session to its cart and wishlist mirrors and refreshes
// both whenever the signed-in identity changes.
type Storefront struct {
	API      *APIClient
	Session  *Session
	Cart     *CartSync
	Wishlist *WishlistSync
}

func NewStorefront(baseURL string, timeout time.Duration) *Storefront {
	session := NewSession()
	api := NewAPIClient(baseURL, timeout, session)
	return &Storefront{
		API:      api,
		Session:  session,
		Cart:     NewCartSync(api, session),
		Wishlist: NewWishlistSync(api, session),
	}
}

// SignIn logs in with credentials and reloads the cart and wishlist for the new identity.
func (s *Storefront) SignIn(ctx context.Context, email, password string) Result {
	resp, err := s.API.Login(ctx, email, password)
	if err != nil {
		return failure(err, "Failed to sign in")
	}
	s.identityChanged(ctx, resp.User, resp.Token)
	return Result{Success: true}
}

// SignUp creates an account, signs it in and reloads the cart and wishlist.
func (s *Storefront) SignUp(ctx context.Context, name, email, password string) Result {
	resp, err := s.API.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return failure(err, "Failed to create account")
	}
	s.identityChanged(ctx, resp.User, resp.Token)
	return Result{Success: true}
}

// SignOut drops the local identity even if the server cannot be reached.
func (s *Storefront) SignOut(ctx context.Context) {
	_ = s.API.Logout(ctx)
	s.identityChanged(ctx, nil, "")
}

func (s *Storefront) identityChanged(ctx context.Context, user *models.User, token string) {
	s.Session.Set(user, token)
	_ = s.Cart.FetchCart(ctx)
	_ = s.Wishlist.Refresh(ctx)
}
