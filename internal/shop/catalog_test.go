package shop

import (
	"context"
	"strconv"
	"testing"
	"time"

	"ecommerce_api/internal/cache"
	"ecommerce_api/internal/domain"
	"ecommerce_api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cachePrefix = "shop:cache:"

func TestCatalogCachesReads(t *testing.T) {
	gdb := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	catalog := NewCatalog(gdb, cache.New(rdb, cachePrefix, time.Minute))
	mug := testutil.CreateProduct(t, gdb, "mug", "9.50")
	ctx := context.Background()
	key := cachePrefix + "products:" + strconv.FormatUint(uint64(mug.ID), 10)

	got, err := catalog.Get(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "mug", got.Name)
	assert.True(t, mr.Exists(key))

	// a write behind the catalog's back is invisible until invalidation
	require.NoError(t, gdb.Model(&domain.Product{}).Where("id = ?", mug.ID).Update("name", "cup").Error)
	got, err = catalog.Get(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "mug", got.Name)

	updated, err := catalog.Update(ctx, mug.ID, ProductInput{Name: "big mug", Price: decimal.RequireFromString("12.00"), Stock: 0})
	require.NoError(t, err)
	assert.Equal(t, "big mug", updated.Name)
	assert.Equal(t, 0, updated.Stock)
	assert.False(t, mr.Exists(key))

	got, err = catalog.Get(ctx, mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "big mug", got.Name)
	assert.Equal(t, 0, got.Stock)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(12)))
}

func TestCatalogListInvalidation(t *testing.T) {
	gdb := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	catalog := NewCatalog(gdb, cache.New(rdb, cachePrefix, time.Minute))
	ctx := context.Background()

	products, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.True(t, mr.Exists(cachePrefix+"products:all"))

	created, err := catalog.Create(ctx, ProductInput{Name: " lamp ", Description: "desk lamp", Price: decimal.RequireFromString("39.00"), Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, "lamp", created.Name)
	assert.False(t, mr.Exists(cachePrefix+"products:all"))

	products, err = catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	require.NoError(t, catalog.Delete(ctx, created.ID))
	products, err = catalog.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogWithoutCache(t *testing.T) {
	gdb := testutil.NewDB(t)
	catalog := NewCatalog(gdb, nil)
	ctx := context.Background()

	_, err := catalog.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = catalog.Update(ctx, 42, ProductInput{Name: "x", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, catalog.Delete(ctx, 42), ErrNotFound)

	_, err = catalog.Create(ctx, ProductInput{Name: "  ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = catalog.Create(ctx, ProductInput{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = catalog.Create(ctx, ProductInput{Name: "x", Price: decimal.NewFromInt(1), Stock: -2})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogCacheOutageFallsBackToStore(t *testing.T) {
	gdb := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	catalog := NewCatalog(gdb, cache.New(rdb, cachePrefix, time.Minute))
	mug := testutil.CreateProduct(t, gdb, "mug", "9.50")
	mr.Close()

	got, err := catalog.Get(context.Background(), mug.ID)
	require.NoError(t, err)
	assert.Equal(t, "mug", got.Name)
}
