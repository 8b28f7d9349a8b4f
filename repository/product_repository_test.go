package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/joanie-store/storefront/internal/testutil"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestProductFindAll_FiltersByCategory(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "sale_price", "image", "rating", "review_count", "category", "is_on_sale"}).
		AddRow("p-6", "HAVIT HV-G92 Gamepad", "1160", "960", "/images/shoe-6.png", 4.0, 75, "trending", true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE category = $1 ORDER BY created_at DESC`)).
		WithArgs("trending").
		WillReturnRows(rows)

	products, err := repo.FindAll(context.Background(), models.CategoryTrending)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "960", products[0].EffectivePrice().String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductFindAll_NoCategoryListsEverything(t *testing.T) {
	db := testutil.NewDB(t)
	catalog := testutil.SeedCatalog(t, db)
	repo := repository.NewGormProductRepository(db)

	products, err := repo.FindAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, catalog.Regular.ID, products[0].ID)
}

func TestProductFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	id := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductFindByID_MalformedIDSkipsQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	p, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartDelete_SQLShape(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cart_items" WHERE id = $1`)).
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "item-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartSumQuantity_SQLShape(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(quantity), 0) FROM "cart_items" WHERE user_id = $1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(7))

	total, err := repo.SumQuantity(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}
