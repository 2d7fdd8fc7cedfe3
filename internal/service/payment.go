package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout.
const (
	PaymentCard = "card"
	PaymentUPI  = "upi"
	PaymentCOD  = "cod"
)

type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVV      string `json:"cvv"`
}

type ChargeRequest struct {
	Method      string
	AmountCents int64
	Card        *CardDetails
	VPA         string // upi id, e.g. "name@bank"
}

type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	AmountCents   int64     `json:"amount_cents"`
	AuthorizedAt  time.Time `json:"authorized_at"`
}

// PaymentService is the one place simulated gateway latency lives.
// Charge honors ctx cancellation during the fake authorization delay.
type PaymentService interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
}

// mockGateway stands in for a real processor. Declines are
// deterministic: card numbers ending "0000" and the VPA "fail@upi".
type mockGateway struct {
	minDelay time.Duration
	maxDelay time.Duration
}

func NewPaymentService(minDelay, maxDelay time.Duration) PaymentService {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &mockGateway{minDelay: minDelay, maxDelay: maxDelay}
}

func (g *mockGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if req.AmountCents <= 0 {
		return Receipt{}, ErrInvalidPayment
	}
	if err := g.validate(req); err != nil {
		return Receipt{}, err
	}

	if err := g.authorize(ctx); err != nil {
		return Receipt{}, err
	}

	if req.Method == PaymentCard && strings.HasSuffix(req.Card.Number, "0000") {
		slog.Info("payment declined", "method", req.Method, "amount_cents", req.AmountCents)
		return Receipt{}, fmt.Errorf("%w: insufficient funds", ErrPaymentDeclined)
	}
	if req.Method == PaymentUPI && req.VPA == "fail@upi" {
		slog.Info("payment declined", "method", req.Method, "amount_cents", req.AmountCents)
		return Receipt{}, fmt.Errorf("%w: upi authorization failed", ErrPaymentDeclined)
	}

	return Receipt{
		TransactionID: uuid.NewString(),
		Method:        req.Method,
		AmountCents:   req.AmountCents,
		AuthorizedAt:  time.Now(),
	}, nil
}

func (g *mockGateway) validate(req ChargeRequest) error {
	switch req.Method {
	case PaymentCard:
		c := req.Card
		if c == nil {
			return ErrInvalidPayment
		}
		digits := strings.ReplaceAll(c.Number, " ", "")
		if len(digits) < 12 || len(digits) > 19 {
			return ErrInvalidPayment
		}
		if c.ExpMonth < 1 || c.ExpMonth > 12 {
			return ErrInvalidPayment
		}
		now := time.Now()
		if c.ExpYear < now.Year() ||
			(c.ExpYear == now.Year() && c.ExpMonth < int(now.Month())) {
			return ErrInvalidPayment
		}
		if len(c.CVV) != 3 && len(c.CVV) != 4 {
			return ErrInvalidPayment
		}
	case PaymentUPI:
		at := strings.Index(req.VPA, "@")
		if at < 1 || at == len(req.VPA)-1 {
			return ErrInvalidPayment
		}
	case PaymentCOD:
		// nothing to verify up front
	default:
		return ErrInvalidPayment
	}
	return nil
}

// authorize sleeps for the fake bank round-trip, or returns early if
// the caller goes away.
func (g *mockGateway) authorize(ctx context.Context) error {
	delay := g.minDelay
	if spread := g.maxDelay - g.minDelay; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
