package model

import "time"

// Usertype values. Kept as plain ints to match the seed data.
const (
	UsertypeAdmin    = 1
	UsertypeCustomer = 2
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Usertype     int       `gorm:"not null;default:2" json:"usertype"`
	Theme        string    `gorm:"default:light" json:"theme"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Barcode     string    `gorm:"uniqueIndex" json:"barcode"`
	Title       string    `gorm:"not null" json:"title"`
	Author      string    `json:"author"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	Category    string    `gorm:"index" json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	BookID    uint      `json:"book_id"`
	Qty       int       `json:"qty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;uniqueIndex:idx_wishlist_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_wishlist_user_book" json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Order statuses. Terminal states are delivered and cancelled.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Ref             string      `gorm:"uniqueIndex" json:"ref"`
	UserID          uint        `gorm:"index" json:"user_id"`
	TotalCents      int64       `json:"total_cents"`
	Status          string      `gorm:"not null;default:pending" json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentRef      string      `json:"payment_ref"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem snapshots the book at order time so later catalog edits
// don't rewrite order history.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderID    uint   `gorm:"index" json:"order_id"`
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	Qty        int    `json:"qty"`
}
