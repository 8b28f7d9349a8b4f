package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/joanie-store/storefront/internal/testutil"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistToggle_AddsThenRemoves(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := testutil.SeedCatalog(t, db)
	repo := repository.NewGormWishlistRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()

	added, err := repo.Toggle(ctx, userID, catalog.Sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WishlistAdded, added.Action)
	assert.True(t, added.IsWishlisted)
	require.NotNil(t, added.Item)
	assert.Equal(t, catalog.Sale.ID, added.Item.Product.ID)

	ids, err := repo.ProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Sale.ID}, ids)

	removed, err := repo.Toggle(ctx, userID, catalog.Sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WishlistRemoved, removed.Action)
	assert.False(t, removed.IsWishlisted)
	assert.Nil(t, removed.Item)

	ids, err = repo.ProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestWishlistFindByUser_PreloadsProducts(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := testutil.SeedCatalog(t, db)
	repo := repository.NewGormWishlistRepository(db)
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := repo.Toggle(ctx, userID, catalog.Regular.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, uuid.NewString(), catalog.Sale.ID)
	require.NoError(t, err)

	items, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "HAVIT HV-G92 Gamepad", items[0].Product.Name)
}

func TestWishlistDelete(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := testutil.SeedCatalog(t, db)
	repo := repository.NewGormWishlistRepository(db)
	ctx := context.Background()

	res, err := repo.Toggle(ctx, uuid.NewString(), catalog.Regular.ID)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, res.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Item.UserID, found.UserID)

	require.NoError(t, repo.Delete(ctx, res.Item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, res.Item.ID), repository.ErrNotFound)
}
