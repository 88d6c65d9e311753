package db_test

import (
	"path/filepath"
	"testing"

	"ecommerce_api/internal/config"
	"ecommerce_api/internal/db"
	"ecommerce_api/internal/domain"
	"ecommerce_api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMigrateIsIdempotent(t *testing.T) {
	gdb := testutil.NewDB(t)
	require.NoError(t, db.Migrate(gdb))
	for _, m := range db.Models() {
		assert.True(t, gdb.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, gdb.Migrator().HasIndex(&domain.Order{}, "CartID"))
}

func TestSeed(t *testing.T) {
	gdb := testutil.NewDB(t)

	require.NoError(t, db.Seed(gdb, ""))
	var products, users int64
	require.NoError(t, gdb.Model(&domain.Product{}).Count(&products).Error)
	require.NoError(t, gdb.Model(&domain.User{}).Count(&users).Error)
	assert.Equal(t, int64(5), products)
	assert.Zero(t, users)

	// a second run adds only the admin
	require.NoError(t, db.Seed(gdb, "admin-password"))
	require.NoError(t, db.Seed(gdb, "admin-password"))
	require.NoError(t, gdb.Model(&domain.Product{}).Count(&products).Error)
	assert.Equal(t, int64(5), products)

	var admin domain.User
	require.NoError(t, gdb.Where("username = ?", "admin").First(&admin).Error)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin-password")))
}

func TestOpenSQLite(t *testing.T) {
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
	require.NoError(t, db.Seed(gdb, ""))

	_, err = db.Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
