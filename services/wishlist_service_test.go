package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/joanie-store/storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_TwiceRestoresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.NewString()

	added, svcErr := f.wishlist.Toggle(ctx, userID, f.catalog.Sale.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.WishlistAdded, added.Action)
	assert.True(t, added.IsWishlisted)
	require.NotNil(t, added.Item)
	assert.Equal(t, []string{f.catalog.Sale.ID}, f.wishlist.ProductIDs(ctx, userID))

	removed, svcErr := f.wishlist.Toggle(ctx, userID, f.catalog.Sale.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.WishlistRemoved, removed.Action)
	assert.False(t, removed.IsWishlisted)
	assert.Empty(t, f.wishlist.ProductIDs(ctx, userID))

	assert.Equal(t, []string{models.EventWishlistItemAdded, models.EventWishlistItemRemoved}, f.sns.types())
}

func TestToggle_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, svcErr := f.wishlist.Toggle(ctx, "", f.catalog.Regular.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)

	_, svcErr = f.wishlist.Toggle(ctx, uuid.NewString(), "")
	require.NotNil(t, svcErr)
	assert.Equal(t, "Product ID required", svcErr.Message)

	_, svcErr = f.wishlist.Toggle(ctx, uuid.NewString(), uuid.NewString())
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Product not found", svcErr.Message)
}

func TestProductIDs_AnonymousIsEmpty(t *testing.T) {
	f := newFixture(t)
	ids := f.wishlist.ProductIDs(context.Background(), "")
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestListItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.NewString()

	_, svcErr := f.wishlist.Toggle(ctx, userID, f.catalog.Regular.ID)
	require.Nil(t, svcErr)

	items, svcErr := f.wishlist.ListItems(ctx, userID)
	require.Nil(t, svcErr)
	require.Len(t, items, 1)
	assert.Equal(t, f.catalog.Regular.ID, items[0].Product.ID)

	_, svcErr = f.wishlist.ListItems(ctx, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}

func TestWishlistRemoveItem_ScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.NewString()

	res, svcErr := f.wishlist.Toggle(ctx, owner, f.catalog.Regular.ID)
	require.Nil(t, svcErr)

	svcErr = f.wishlist.RemoveItem(ctx, uuid.NewString(), res.Item.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Item not found", svcErr.Message)
	assert.Len(t, f.wishlist.ProductIDs(ctx, owner), 1)

	require.Nil(t, f.wishlist.RemoveItem(ctx, owner, res.Item.ID))
	assert.Empty(t, f.wishlist.ProductIDs(ctx, owner))
}
