package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesQuantities(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 2))
	require.NoError(t, cart.Add(ctx, uid, book.ID, 3))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.Lines[0].Qty)
	assert.Equal(t, 5, view.Count)
}

func TestCartAddRejectsNonPositiveQty(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	assert.ErrorIs(t, cart.Add(ctx, uid, book.ID, 0), ErrInvalidQty)
	assert.ErrorIs(t, cart.Add(ctx, uid, book.ID, -1), ErrInvalidQty)
}

func TestCartAddUnknownBook(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())

	err := cart.Add(context.Background(), customerID(t, mem.Users()), 9999, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCartUpdateZeroRemoves(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 2))
	require.NoError(t, cart.Update(ctx, uid, book.ID, 0))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartUpdateNegativeRejected(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 2))
	assert.ErrorIs(t, cart.Update(ctx, uid, book.ID, -1), ErrInvalidQty)

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Qty)
}

func TestCartUpdateReplacesQty(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 2))
	require.NoError(t, cart.Update(ctx, uid, book.ID, 7))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 7, view.Lines[0].Qty)
}

func TestCartRemoveAbsentIsNoop(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 1))
	require.NoError(t, cart.Remove(ctx, uid, 9999))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCartTotalsComeFromCatalog(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	rust := findBook(t, mem.Books(), "The Rust Programming Language")
	gopl := findBook(t, mem.Books(), "The Go Programming Language")

	require.NoError(t, cart.Add(ctx, uid, rust.ID, 2))
	require.NoError(t, cart.Add(ctx, uid, gopl.ID, 1))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, rust.PriceCents*2+gopl.PriceCents, view.TotalCents)
	assert.Equal(t, 3, view.Count)
}

func TestCartClear(t *testing.T) {
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	ctx := context.Background()
	uid := customerID(t, mem.Users())
	book := findBook(t, mem.Books(), "Clean Code")

	require.NoError(t, cart.Add(ctx, uid, book.ID, 4))
	require.NoError(t, cart.Clear(ctx, uid))

	view, err := cart.Get(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.TotalCents)
}
