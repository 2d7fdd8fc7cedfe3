package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *CardDetails {
	return &CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: time.Now().Year() + 2, CVV: "123"}
}

func TestChargeCardSuccess(t *testing.T) {
	gw := NewPaymentService(0, 0)

	r, err := gw.Charge(context.Background(), ChargeRequest{
		Method: PaymentCard, AmountCents: 2500, Card: validCard(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.TransactionID)
	assert.Equal(t, PaymentCard, r.Method)
	assert.Equal(t, int64(2500), r.AmountCents)
	assert.False(t, r.AuthorizedAt.IsZero())
}

func TestChargeCardDeclined(t *testing.T) {
	gw := NewPaymentService(0, 0)

	card := validCard()
	card.Number = "4242424242420000"
	_, err := gw.Charge(context.Background(), ChargeRequest{
		Method: PaymentCard, AmountCents: 2500, Card: card,
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestChargeCardValidation(t *testing.T) {
	gw := NewPaymentService(0, 0)
	ctx := context.Background()

	cases := map[string]*CardDetails{
		"missing card":  nil,
		"short number":  {Number: "4242", ExpMonth: 12, ExpYear: 2030, CVV: "123"},
		"bad month":     {Number: "4242424242424242", ExpMonth: 13, ExpYear: 2030, CVV: "123"},
		"expired":       {Number: "4242424242424242", ExpMonth: 1, ExpYear: 2020, CVV: "123"},
		"bad cvv":       {Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVV: "12"},
	}
	for name, card := range cases {
		_, err := gw.Charge(ctx, ChargeRequest{Method: PaymentCard, AmountCents: 100, Card: card})
		assert.ErrorIs(t, err, ErrInvalidPayment, name)
	}
}

func TestChargeUPI(t *testing.T) {
	gw := NewPaymentService(0, 0)
	ctx := context.Background()

	_, err := gw.Charge(ctx, ChargeRequest{Method: PaymentUPI, AmountCents: 100, VPA: "shashi@okbank"})
	assert.NoError(t, err)

	_, err = gw.Charge(ctx, ChargeRequest{Method: PaymentUPI, AmountCents: 100, VPA: "nobank"})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = gw.Charge(ctx, ChargeRequest{Method: PaymentUPI, AmountCents: 100, VPA: "fail@upi"})
	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestChargeUnknownMethod(t *testing.T) {
	gw := NewPaymentService(0, 0)

	_, err := gw.Charge(context.Background(), ChargeRequest{Method: "barter", AmountCents: 100})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestChargeZeroAmount(t *testing.T) {
	gw := NewPaymentService(0, 0)

	_, err := gw.Charge(context.Background(), ChargeRequest{Method: PaymentCOD, AmountCents: 0})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestChargeHonorsCancellation(t *testing.T) {
	gw := NewPaymentService(5*time.Second, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := gw.Charge(ctx, ChargeRequest{Method: PaymentCOD, AmountCents: 100})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancelled charge must not wait out the delay")
}
