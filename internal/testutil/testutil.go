// Package testutil builds throwaway stores for package tests: an in-memory
// sqlite database migrated with the production schema and a miniredis server.
package testutil

import (
	"testing"

	"ecommerce_api/internal/config"
	"ecommerce_api/internal/db"
	"ecommerce_api/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated sqlite database private to the test.
// The pool is pinned to one connection so the in-memory database lives
// as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := config.SQLiteDSN("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// NewRedis starts a miniredis server and returns a client connected to it.
func NewRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// CreateUser inserts a user with a bcrypt hash of password.
func CreateUser(t testing.TB, gdb *gorm.DB, username, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Username: username, Email: username + "@example.com", Password: string(hash), Role: domain.RoleUser}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

// CreateProduct inserts a product priced at price.
func CreateProduct(t testing.TB, gdb *gorm.DB, name, price string) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Description: name + " description", Price: decimal.RequireFromString(price), Stock: 10}
	require.NoError(t, gdb.Create(p).Error)
	return p
}
