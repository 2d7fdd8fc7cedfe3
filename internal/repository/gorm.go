package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

// Gorm repositories back the same interfaces with a real database.
// Error mapping: gorm.ErrRecordNotFound becomes ErrNotFound so callers
// never import gorm.

type GormUsers struct{ db *gorm.DB }

func NewGormUsers(db *gorm.DB) *GormUsers { return &GormUsers{db: db} }

func (r *GormUsers) Create(ctx context.Context, u *model.User) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUsers) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (r *GormUsers) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *GormUsers) GetAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	return users, r.db.WithContext(ctx).Order("id asc").Find(&users).Error
}

type GormBooks struct{ db *gorm.DB }

func NewGormBooks(db *gorm.DB) *GormBooks { return &GormBooks{db: db} }

func (r *GormBooks) Create(ctx context.Context, b *model.Book) error {
	if b.Barcode != "" {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Book{}).
			Where("barcode = ?", b.Barcode).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormBooks) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	var b model.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *GormBooks) GetAll(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	return books, r.db.WithContext(ctx).Order("id asc").Find(&books).Error
}

func (r *GormBooks) Update(ctx context.Context, b *model.Book) error {
	res := r.db.WithContext(ctx).Save(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBooks) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormCarts struct{ db *gorm.DB }

func NewGormCarts(db *gorm.DB) *GormCarts { return &GormCarts{db: db} }

func (r *GormCarts) GetLine(ctx context.Context, userID, bookID uint) (*model.CartItem, error) {
	var it model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).First(&it).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &it, nil
}

func (r *GormCarts) GetByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	return items, r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("id asc").Find(&items).Error
}

func (r *GormCarts) Save(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormCarts) Delete(ctx context.Context, userID, bookID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.CartItem{}).Error
}

func (r *GormCarts) Clear(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}

type GormWishlists struct{ db *gorm.DB }

func NewGormWishlists(db *gorm.DB) *GormWishlists { return &GormWishlists{db: db} }

func (r *GormWishlists) Add(ctx context.Context, userID, bookID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&model.WishlistItem{UserID: userID, BookID: bookID}).Error
}

func (r *GormWishlists) Remove(ctx context.Context, userID, bookID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&model.WishlistItem{}).Error
}

func (r *GormWishlists) Contains(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormWishlists) GetByUser(ctx context.Context, userID uint) ([]uint, error) {
	var items []model.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.BookID)
	}
	return ids, nil
}

type GormOrders struct{ db *gorm.DB }

func NewGormOrders(db *gorm.DB) *GormOrders { return &GormOrders{db: db} }

func (r *GormOrders) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *GormOrders) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func (r *GormOrders) GetByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	return orders, r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).Order("id desc").Find(&orders).Error
}

func (r *GormOrders) GetAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	return orders, r.db.WithContext(ctx).Preload("Items").
		Order("id desc").Find(&orders).Error
}

func (r *GormOrders) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
