package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"ecommerce_api/internal/config"
	"ecommerce_api/internal/db"
	"ecommerce_api/internal/domain"
	"ecommerce_api/internal/shop"
	"ecommerce_api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openSQLiteFile opens a migrated file database through the production path.
func openSQLiteFile(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DBName:         filepath.Join(t.TempDir(), "shop.db"),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	gdb := openSQLiteFile(t)
	ctx := context.Background()

	var enabled int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	user := testutil.CreateUser(t, gdb, "alice", "password1")
	mug := testutil.CreateProduct(t, gdb, "mug", "9.50")
	carts := shop.NewCartManager(gdb)
	cart, err := carts.CreateCart(ctx, user.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, mug.ID, 2)
	require.NoError(t, err)

	// deleting a product removes the lines pointing at it
	require.NoError(t, shop.NewCatalog(gdb, nil).Delete(ctx, mug.ID))
	var lines int64
	require.NoError(t, gdb.Model(&domain.CartItem{}).Count(&lines).Error)
	assert.Zero(t, lines)

	// lines cannot reference a missing cart or product
	err = gdb.Create(&domain.CartItem{CartID: cart.ID + 100, ProductID: mug.ID, Quantity: 1}).Error
	assert.Error(t, err)
}

func TestDeletingCheckedOutCartKeepsOrder(t *testing.T) {
	gdb := openSQLiteFile(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, gdb, "alice", "password1")
	lamp := testutil.CreateProduct(t, gdb, "lamp", "39.00")
	carts := shop.NewCartManager(gdb)
	cart, err := carts.CreateCart(ctx, user.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, lamp.ID, 1)
	require.NoError(t, err)
	order, err := shop.NewCheckout(gdb, nil).Checkout(ctx, cart.ID)
	require.NoError(t, err)

	require.NoError(t, carts.DeleteCart(ctx, cart.ID))

	var stored domain.Order
	require.NoError(t, gdb.First(&stored, order.ID).Error)
	assert.Nil(t, stored.CartID)
	assert.Equal(t, user.ID, stored.UserID)
}
