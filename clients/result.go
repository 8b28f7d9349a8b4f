package clients

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/joanie-store/storefront/models"
)

// FailureKind classifies why a sync operation failed.
type FailureKind string

const (
	FailureUnauthenticated FailureKind = "unauthenticated"
	FailureValidation      FailureKind = "validation"
	FailureNotFound        FailureKind = "not_found"
	FailureTransient       FailureKind = "transient"
)

// APIError is a non-2xx answer from the storefront API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: status=%d error=%q", e.StatusCode, e.Message)
}

// Kind maps the status code onto a FailureKind.
func (e *APIError) Kind() FailureKind {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return FailureUnauthenticated
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return FailureValidation
	case http.StatusNotFound:
		return FailureNotFound
	default:
		return FailureTransient
	}
}

// Result is the outcome of a cart or wishlist mutation as shown to the UI.
// Error and Kind are set only when Success is false.
type Result struct {
	Success bool
	Error   string
	Kind    FailureKind

	// Item is the affected cart line for AddToCart.
	Item *models.CartItem
	// Action and IsWishlisted are the server's answer to ToggleWishlist.
	Action       models.WishlistAction
	IsWishlisted bool
}

func failed(kind FailureKind, msg string) Result {
	return Result{Error: msg, Kind: kind}
}

// failure prefers the server's error message and falls back to fallback when
// the request never got an answer.
func failure(err error, fallback string) Result {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return failed(apiErr.Kind(), msg)
	}
	return failed(FailureTransient, fallback)
}
