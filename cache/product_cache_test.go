package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/joanie-store/storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetList_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	pc := NewProductCache(client, time.Minute)

	products := []models.Product{{ID: "p-1", Name: "HAVIT HV-G92 Gamepad", Price: decimal.NewFromInt(160), Category: models.CategoryTrending}}
	data, err := json.Marshal(products)
	require.NoError(t, err)

	mock.ExpectGet(VersionKey).SetVal("3")
	mock.ExpectGet("products:v:3:c:trending").SetVal(string(data))

	got, ok := pc.GetList(context.Background(), models.CategoryTrending)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, got[0].Price.Equal(decimal.NewFromInt(160)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetList_InitialisesVersionOnMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	pc := NewProductCache(client, time.Minute)

	mock.ExpectGet(VersionKey).RedisNil()
	mock.ExpectSetNX(VersionKey, 1, 0).SetVal(true)
	mock.ExpectGet("products:v:1:c:all").RedisNil()

	_, ok := pc.GetList(context.Background(), "")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetProduct_UsesVersionedKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	pc := NewProductCache(client, time.Minute)

	product := &models.Product{ID: "p-2", Name: "HAVIT HV-G92 Gamepad", Price: decimal.NewFromInt(1160)}
	data, err := json.Marshal(product)
	require.NoError(t, err)

	mock.ExpectGet(VersionKey).SetVal("2")
	mock.ExpectSet("products:v:2:id:p-2", data, time.Minute).SetVal("OK")

	pc.SetProduct(context.Background(), product)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_RedisDownIsAMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	pc := NewProductCache(client, time.Minute)

	mock.ExpectGet(VersionKey).SetErr(errors.New("connection refused"))

	_, ok := pc.GetProduct(context.Background(), "p-1")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	pc := NewProductCache(client, time.Minute)

	mock.ExpectIncr(VersionKey).SetVal(4)
	assert.NoError(t, pc.Invalidate(context.Background()))

	mock.ExpectIncr(VersionKey).SetErr(errors.New("boom"))
	assert.Error(t, pc.Invalidate(context.Background()))
}

func TestNilClientIsNoop(t *testing.T) {
	pc := NewProductCache(nil, 0)
	ctx := context.Background()

	pc.SetList(ctx, "", []models.Product{{ID: "p-1"}})
	_, ok := pc.GetList(ctx, "")
	assert.False(t, ok)
	assert.NoError(t, pc.Invalidate(ctx))
}
