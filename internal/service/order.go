package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

type CheckoutInput struct {
	ShippingAddress string
	Method          string
	Card            *CardDetails
	VPA             string
}

// OrderService owns the single order-creation path: every checkout,
// whatever the payment method, goes through Checkout.
type OrderService interface {
	Checkout(ctx context.Context, userID uint, in CheckoutInput) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*model.Order, error)
}

type orderService struct {
	orders  repository.OrderRepository
	carts   repository.CartRepository
	books   repository.BookRepository
	users   repository.UserRepository
	payment PaymentService
	email   EmailService
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	books repository.BookRepository,
	users repository.UserRepository,
	payment PaymentService,
	email EmailService,
) OrderService {
	return &orderService{orders: orders, carts: carts, books: books, users: users, payment: payment, email: email}
}

func (s *orderService) Checkout(ctx context.Context, userID uint, in CheckoutInput) (*model.Order, error) {
	items, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// snapshot cart lines at catalog prices
	var total int64
	oitems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		b, err := s.books.GetByID(ctx, it.BookID)
		if errors.Is(err, repository.ErrNotFound) {
			_ = s.carts.Delete(ctx, userID, it.BookID)
			continue
		} else if err != nil {
			return nil, err
		}
		total += b.PriceCents * int64(it.Qty)
		oitems = append(oitems, model.OrderItem{
			BookID:     b.ID,
			Title:      b.Title,
			PriceCents: b.PriceCents,
			Qty:        it.Qty,
		})
	}
	if len(oitems) == 0 {
		return nil, ErrEmptyCart
	}

	receipt, err := s.payment.Charge(ctx, ChargeRequest{
		Method:      in.Method,
		AmountCents: total,
		Card:        in.Card,
		VPA:         in.VPA,
	})
	if err != nil {
		return nil, err
	}

	order := model.Order{
		Ref:             newOrderRef(),
		UserID:          userID,
		TotalCents:      total,
		Status:          model.OrderPending,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.Method,
		PaymentRef:      receipt.TransactionID,
		Items:           oitems,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		slog.Warn("cart clear after checkout failed", "user_id", userID, "error", err)
	}

	// confirmation mail is best-effort
	if u, err := s.users.GetByID(ctx, userID); err == nil {
		body := fmt.Sprintf("Thanks! Your order %s total %.2f received.", order.Ref, float64(order.TotalCents)/100.0)
		if err := s.email.Send(u.Email, "Order confirmation", body); err != nil {
			slog.Warn("confirmation mail failed", "order_ref", order.Ref, "error", err)
		}
	}

	return &order, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orders.GetByUser(ctx, userID)
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	return s.orders.GetAll(ctx)
}

// statusFlow is the allowed transition graph. Delivered and cancelled
// are terminal.
var statusFlow = map[string][]string{
	model.OrderPending:    {model.OrderProcessing, model.OrderCancelled},
	model.OrderProcessing: {model.OrderShipped, model.OrderCancelled},
	model.OrderShipped:    {model.OrderDelivered},
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*model.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	allowed := false
	for _, next := range statusFlow[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	o.Status = status
	return o, nil
}

// newOrderRef makes a short public reference like "A7X94KQ2".
func newOrderRef() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return raw[:8]
}
