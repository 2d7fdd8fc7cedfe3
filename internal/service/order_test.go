package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

type orderEnv struct {
	mem    *repository.Memory
	cart   CartService
	orders OrderService
	uid    uint
}

func newOrderEnv(t *testing.T) orderEnv {
	t.Helper()
	mem := newSeededMemory(t)
	cart := NewCartService(mem.Carts(), mem.Books())
	payment := NewPaymentService(0, 0)
	orders := NewOrderService(mem.Orders(), mem.Carts(), mem.Books(), mem.Users(), payment, NewEmailService())
	return orderEnv{mem: mem, cart: cart, orders: orders, uid: customerID(t, mem.Users())}
}

func TestCheckoutCreatesPendingOrder(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	rust := findBook(t, env.mem.Books(), "The Rust Programming Language")
	gopl := findBook(t, env.mem.Books(), "The Go Programming Language")

	require.NoError(t, env.cart.Add(ctx, env.uid, rust.ID, 2))
	require.NoError(t, env.cart.Add(ctx, env.uid, gopl.ID, 1))

	o, err := env.orders.Checkout(ctx, env.uid, CheckoutInput{
		ShippingAddress: "221B Baker Street",
		Method:          PaymentCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Len(t, o.Ref, 8)
	assert.Equal(t, rust.PriceCents*2+gopl.PriceCents, o.TotalCents)
	require.Len(t, o.Items, 2)
	assert.Equal(t, rust.Title, o.Items[0].Title)
	assert.Equal(t, 2, o.Items[0].Qty)

	// checkout empties the cart
	view, err := env.cart.Get(ctx, env.uid)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	// and the order shows up in the user's history
	history, err := env.orders.ListByUser(ctx, env.uid)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, o.Ref, history[0].Ref)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.orders.Checkout(context.Background(), env.uid, CheckoutInput{
		ShippingAddress: "somewhere", Method: PaymentCOD,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDeclinedPaymentKeepsCart(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	book := findBook(t, env.mem.Books(), "Clean Code")
	require.NoError(t, env.cart.Add(ctx, env.uid, book.ID, 1))

	_, err := env.orders.Checkout(ctx, env.uid, CheckoutInput{
		ShippingAddress: "somewhere",
		Method:          PaymentCard,
		Card:            &CardDetails{Number: "4242424242420000", ExpMonth: 12, ExpYear: 2030, CVV: "123"},
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	view, err := env.cart.Get(ctx, env.uid)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1, "a failed charge must not consume the cart")

	history, err := env.orders.ListByUser(ctx, env.uid)
	require.NoError(t, err)
	assert.Empty(t, history, "no order is written for a declined payment")
}

func TestCheckoutSnapshotSurvivesCatalogEdits(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	book := findBook(t, env.mem.Books(), "Clean Code")
	require.NoError(t, env.cart.Add(ctx, env.uid, book.ID, 1))

	o, err := env.orders.Checkout(ctx, env.uid, CheckoutInput{
		ShippingAddress: "somewhere", Method: PaymentCOD,
	})
	require.NoError(t, err)

	book.PriceCents = 1
	require.NoError(t, env.mem.Books().Update(ctx, &book))

	stored, err := env.orders.ListByUser(ctx, env.uid)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, o.Items[0].PriceCents, stored[0].Items[0].PriceCents)
}

func TestOrderStatusTransitions(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	book := findBook(t, env.mem.Books(), "Clean Code")
	require.NoError(t, env.cart.Add(ctx, env.uid, book.ID, 1))
	o, err := env.orders.Checkout(ctx, env.uid, CheckoutInput{ShippingAddress: "x", Method: PaymentCOD})
	require.NoError(t, err)

	// pending cannot jump straight to shipped
	_, err = env.orders.UpdateStatus(ctx, o.ID, model.OrderShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, status := range []string{model.OrderProcessing, model.OrderShipped, model.OrderDelivered} {
		updated, err := env.orders.UpdateStatus(ctx, o.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	// delivered is terminal
	_, err = env.orders.UpdateStatus(ctx, o.ID, model.OrderCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderCancelFromPending(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	book := findBook(t, env.mem.Books(), "Clean Code")
	require.NoError(t, env.cart.Add(ctx, env.uid, book.ID, 1))
	o, err := env.orders.Checkout(ctx, env.uid, CheckoutInput{ShippingAddress: "x", Method: PaymentCOD})
	require.NoError(t, err)

	updated, err := env.orders.UpdateStatus(ctx, o.ID, model.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, updated.Status)

	_, err = env.orders.UpdateStatus(ctx, o.ID, model.OrderProcessing)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderStatusUnknownOrder(t *testing.T) {
	env := newOrderEnv(t)

	_, err := env.orders.UpdateStatus(context.Background(), 9999, model.OrderProcessing)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
