package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

// CatalogQuery narrows and orders a catalog listing. Zero value means
// the full catalog in insertion order.
type CatalogQuery struct {
	Search   string // case-insensitive substring over title/author/category
	Category string // exact match, "" or "all" disables
	SortBy   string // title | author | price-low | price-high | rating
}

type CatalogService interface {
	List(ctx context.Context, q CatalogQuery) ([]model.Book, error)
	Get(ctx context.Context, id uint) (*model.Book, error)
	Add(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

type catalogService struct {
	books repository.BookRepository
}

func NewCatalogService(books repository.BookRepository) CatalogService {
	return &catalogService{books: books}
}

func (s *catalogService) List(ctx context.Context, q CatalogQuery) ([]model.Book, error) {
	books, err := s.books.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		filtered := books[:0:0]
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), needle) ||
				strings.Contains(strings.ToLower(b.Author), needle) ||
				strings.Contains(strings.ToLower(b.Category), needle) {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	if q.Category != "" && q.Category != "all" {
		filtered := books[:0:0]
		for _, b := range books {
			if b.Category == q.Category {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	// SliceStable keeps catalog order for ties.
	switch q.SortBy {
	case "title":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	case "author":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Author < books[j].Author })
	case "price-low":
		sort.SliceStable(books, func(i, j int) bool { return books[i].PriceCents < books[j].PriceCents })
	case "price-high":
		sort.SliceStable(books, func(i, j int) bool { return books[i].PriceCents > books[j].PriceCents })
	case "rating":
		sort.SliceStable(books, func(i, j int) bool { return books[i].Rating > books[j].Rating })
	}

	return books, nil
}

func (s *catalogService) Get(ctx context.Context, id uint) (*model.Book, error) {
	b, err := s.books.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	return b, err
}

func (s *catalogService) Add(ctx context.Context, book *model.Book) error {
	return s.books.Create(ctx, book)
}

func (s *catalogService) Update(ctx context.Context, book *model.Book) error {
	if _, err := s.books.GetByID(ctx, book.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return s.books.Update(ctx, book)
}

func (s *catalogService) Delete(ctx context.Context, id uint) error {
	err := s.books.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBookNotFound
	}
	return err
}
