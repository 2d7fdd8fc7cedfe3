package service

import (
	"context"
	"errors"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

// CartLine is a cart item joined with its catalog book. Prices always
// come from the catalog at read time, never from the stored line.
type CartLine struct {
	Book          model.Book `json:"book"`
	Qty           int        `json:"qty"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

type Cart struct {
	Lines      []CartLine `json:"lines"`
	TotalCents int64      `json:"total_cents"`
	Count      int        `json:"count"`
}

type CartService interface {
	Add(ctx context.Context, userID, bookID uint, qty int) error
	Update(ctx context.Context, userID, bookID uint, qty int) error
	Remove(ctx context.Context, userID, bookID uint) error
	Clear(ctx context.Context, userID uint) error
	Get(ctx context.Context, userID uint) (Cart, error)
}

type cartService struct {
	carts repository.CartRepository
	books repository.BookRepository
}

func NewCartService(carts repository.CartRepository, books repository.BookRepository) CartService {
	return &cartService{carts: carts, books: books}
}

func (s *cartService) Add(ctx context.Context, userID, bookID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}

	it, err := s.carts.GetLine(ctx, userID, bookID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.carts.Save(ctx, &model.CartItem{UserID: userID, BookID: bookID, Qty: qty})
	} else if err != nil {
		return err
	}
	it.Qty += qty
	return s.carts.Save(ctx, it)
}

func (s *cartService) Update(ctx context.Context, userID, bookID uint, qty int) error {
	if qty < 0 {
		return ErrInvalidQty
	}
	if qty == 0 {
		return s.carts.Delete(ctx, userID, bookID)
	}
	it, err := s.carts.GetLine(ctx, userID, bookID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookNotFound
	} else if err != nil {
		return err
	}
	it.Qty = qty
	return s.carts.Save(ctx, it)
}

func (s *cartService) Remove(ctx context.Context, userID, bookID uint) error {
	return s.carts.Delete(ctx, userID, bookID)
}

func (s *cartService) Clear(ctx context.Context, userID uint) error {
	return s.carts.Clear(ctx, userID)
}

func (s *cartService) Get(ctx context.Context, userID uint) (Cart, error) {
	items, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	cart := Cart{Lines: make([]CartLine, 0, len(items))}
	for _, it := range items {
		b, err := s.books.GetByID(ctx, it.BookID)
		if errors.Is(err, repository.ErrNotFound) {
			// book was deleted from the catalog; drop the stale line
			_ = s.carts.Delete(ctx, userID, it.BookID)
			continue
		} else if err != nil {
			return Cart{}, err
		}
		sub := b.PriceCents * int64(it.Qty)
		cart.Lines = append(cart.Lines, CartLine{Book: *b, Qty: it.Qty, SubtotalCents: sub})
		cart.TotalCents += sub
		cart.Count += it.Qty
	}
	return cart, nil
}
