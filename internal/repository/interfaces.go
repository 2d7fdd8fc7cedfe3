package repository

import (
	"context"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	GetAll(ctx context.Context) ([]model.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uint) (*model.Book, error)
	GetAll(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

type CartRepository interface {
	GetLine(ctx context.Context, userID, bookID uint) (*model.CartItem, error)
	GetByUser(ctx context.Context, userID uint) ([]model.CartItem, error)
	Save(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, userID, bookID uint) error
	Clear(ctx context.Context, userID uint) error
}

type WishlistRepository interface {
	Add(ctx context.Context, userID, bookID uint) error
	Remove(ctx context.Context, userID, bookID uint) error
	Contains(ctx context.Context, userID, bookID uint) (bool, error)
	GetByUser(ctx context.Context, userID uint) ([]uint, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	GetByUser(ctx context.Context, userID uint) ([]model.Order, error)
	GetAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}
