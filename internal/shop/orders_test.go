package shop

import (
	"context"
	"testing"

	"ecommerce_api/internal/domain"
	"ecommerce_api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersVisibility(t *testing.T) {
	gdb := testutil.NewDB(t)
	orders := NewOrders(gdb)
	ctx := context.Background()
	alice := testutil.CreateUser(t, gdb, "alice", "password1")
	bob := testutil.CreateUser(t, gdb, "bob", "password2")
	admin := testutil.CreateUser(t, gdb, "root", "password3")
	admin.Role = domain.RoleAdmin

	var aliceOrders []*domain.Order
	for i := 1; i <= 3; i++ {
		o, err := orders.Create(ctx, OrderInput{UserID: alice.ID, Total: decimal.NewFromInt(int64(i * 10))})
		require.NoError(t, err)
		aliceOrders = append(aliceOrders, o)
	}
	bobOrder, err := orders.Create(ctx, OrderInput{UserID: bob.ID, Total: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Nil(t, bobOrder.CartID)

	list, total, err := orders.List(ctx, alice, Page{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)
	for _, o := range list {
		assert.Equal(t, alice.ID, o.UserID)
	}

	list, _, err = orders.List(ctx, alice, Page{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, total, err = orders.List(ctx, admin, Page{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	got, err := orders.Get(ctx, alice, aliceOrders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, aliceOrders[0].ID, got.ID)

	_, err = orders.Get(ctx, alice, bobOrder.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = orders.Get(ctx, admin, bobOrder.ID)
	assert.NoError(t, err)
	_, err = orders.Get(ctx, alice, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrdersAdministration(t *testing.T) {
	gdb := testutil.NewDB(t)
	orders := NewOrders(gdb)
	ctx := context.Background()
	alice := testutil.CreateUser(t, gdb, "alice", "password1")
	bob := testutil.CreateUser(t, gdb, "bob", "password2")

	_, err := orders.Create(ctx, OrderInput{UserID: alice.ID})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = orders.Create(ctx, OrderInput{Total: decimal.NewFromInt(3)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = orders.Create(ctx, OrderInput{UserID: alice.ID, Total: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, ErrValidation)

	order, err := orders.Create(ctx, OrderInput{UserID: alice.ID, Total: decimal.RequireFromString("19.99")})
	require.NoError(t, err)

	updated, err := orders.Update(ctx, order.ID, OrderInput{UserID: bob.ID, Total: decimal.RequireFromString("25.00")})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, updated.UserID)

	var stored domain.Order
	require.NoError(t, gdb.First(&stored, order.ID).Error)
	assert.Equal(t, bob.ID, stored.UserID)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(25)), "total %s", stored.Total)

	_, err = orders.Update(ctx, 999, OrderInput{UserID: bob.ID, Total: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, orders.Delete(ctx, order.ID))
	assert.ErrorIs(t, orders.Delete(ctx, order.ID), ErrNotFound)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, Page{Page: 3, PageSize: 20}.Offset())
}
