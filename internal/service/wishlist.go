package service

import (
	"context"
	"errors"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

// WishlistService keeps one per-user set of book ids. Book data is
// joined from the catalog at read time rather than snapshotted, so the
// list can never drift from the canonical records.
type WishlistService interface {
	Add(ctx context.Context, userID, bookID uint) error
	Remove(ctx context.Context, userID, bookID uint) error
	Contains(ctx context.Context, userID, bookID uint) (bool, error)
	List(ctx context.Context, userID uint) ([]model.Book, error)
}

type wishlistService struct {
	wishlists repository.WishlistRepository
	books     repository.BookRepository
}

func NewWishlistService(wishlists repository.WishlistRepository, books repository.BookRepository) WishlistService {
	return &wishlistService{wishlists: wishlists, books: books}
}

func (s *wishlistService) Add(ctx context.Context, userID, bookID uint) error {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return s.wishlists.Add(ctx, userID, bookID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, bookID uint) error {
	return s.wishlists.Remove(ctx, userID, bookID)
}

func (s *wishlistService) Contains(ctx context.Context, userID, bookID uint) (bool, error) {
	return s.wishlists.Contains(ctx, userID, bookID)
}

func (s *wishlistService) List(ctx context.Context, userID uint) ([]model.Book, error) {
	ids, err := s.wishlists.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	books := make([]model.Book, 0, len(ids))
	for _, id := range ids {
		b, err := s.books.GetByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			// deleted from the catalog since it was saved
			_ = s.wishlists.Remove(ctx, userID, id)
			continue
		} else if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, nil
}
