package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

func TestMemoryUserDuplicates(t *testing.T) {
	mem := NewMemory()
	users := mem.Users()
	ctx := context.Background()

	u := model.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, &u))
	require.NotZero(t, u.ID)

	sameName := model.User{Username: "alice", Email: "other@example.com"}
	assert.ErrorIs(t, users.Create(ctx, &sameName), ErrDuplicate)

	sameMail := model.User{Username: "bob", Email: "alice@example.com"}
	assert.ErrorIs(t, users.Create(ctx, &sameMail), ErrDuplicate)
}

func TestMemoryBookCRUD(t *testing.T) {
	mem := NewMemory()
	books := mem.Books()
	ctx := context.Background()

	b := model.Book{Barcode: "123", Title: "T", PriceCents: 100}
	require.NoError(t, books.Create(ctx, &b))

	got, err := books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)

	got.PriceCents = 200
	require.NoError(t, books.Update(ctx, got))
	again, err := books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), again.PriceCents)

	require.NoError(t, books.Delete(ctx, b.ID))
	_, err = books.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, books.Delete(ctx, b.ID), ErrNotFound)

	dup := model.Book{Barcode: "456", Title: "U"}
	require.NoError(t, books.Create(ctx, &dup))
	dup2 := model.Book{Barcode: "456", Title: "V"}
	assert.ErrorIs(t, books.Create(ctx, &dup2), ErrDuplicate)
}

func TestMemoryCartLineLifecycle(t *testing.T) {
	mem := NewMemory()
	carts := mem.Carts()
	ctx := context.Background()

	_, err := carts.GetLine(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, carts.Save(ctx, &model.CartItem{UserID: 1, BookID: 10, Qty: 2}))
	line, err := carts.GetLine(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Qty)
	firstID := line.ID

	// saving the same (user, book) replaces the line, not appends
	line.Qty = 9
	require.NoError(t, carts.Save(ctx, line))
	items, err := carts.GetByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].Qty)
	assert.Equal(t, firstID, items[0].ID)

	require.NoError(t, carts.Delete(ctx, 1, 10))
	items, err = carts.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	// deleting again is a no-op
	assert.NoError(t, carts.Delete(ctx, 1, 10))
}

func TestMemoryCartsAreScopedPerUser(t *testing.T) {
	mem := NewMemory()
	carts := mem.Carts()
	ctx := context.Background()

	require.NoError(t, carts.Save(ctx, &model.CartItem{UserID: 1, BookID: 10, Qty: 1}))
	require.NoError(t, carts.Save(ctx, &model.CartItem{UserID: 2, BookID: 10, Qty: 5}))

	require.NoError(t, carts.Clear(ctx, 1))
	mine, err := carts.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := carts.GetByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestMemoryOrderStatus(t *testing.T) {
	mem := NewMemory()
	orders := mem.Orders()
	ctx := context.Background()

	o := model.Order{UserID: 1, Ref: "ABCD1234", Status: model.OrderPending,
		Items: []model.OrderItem{{BookID: 1, Title: "T", PriceCents: 100, Qty: 1}}}
	require.NoError(t, orders.Create(ctx, &o))
	require.NotZero(t, o.ID)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	require.NoError(t, orders.UpdateStatus(ctx, o.ID, model.OrderProcessing))
	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderProcessing, got.Status)

	assert.ErrorIs(t, orders.UpdateStatus(ctx, 9999, model.OrderShipped), ErrNotFound)
}

func TestSeedDemoIsIdempotent(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.NoError(t, SeedDemo(ctx, mem.Users(), mem.Books()))
	users1, _ := mem.Users().GetAll(ctx)
	books1, _ := mem.Books().GetAll(ctx)

	require.NoError(t, SeedDemo(ctx, mem.Users(), mem.Books()))
	users2, _ := mem.Users().GetAll(ctx)
	books2, _ := mem.Books().GetAll(ctx)

	assert.Equal(t, len(users1), len(users2))
	assert.Equal(t, len(books1), len(books2))
}
