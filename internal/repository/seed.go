package repository

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

// SeedDemo loads the demo users and catalog. Existing records are left
// alone, so running it twice (or hitting the admin seed endpoint after
// boot) is harmless.
func SeedDemo(ctx context.Context, users UserRepository, books BookRepository) error {
	for _, u := range demoUsers() {
		err := users.Create(ctx, &u)
		if err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	for _, b := range demoBooks() {
		err := books.Create(ctx, &b)
		if err != nil && !errors.Is(err, ErrDuplicate) {
			return err
		}
	}
	return nil
}

func demoUsers() []model.User {
	return []model.User{
		{
			Username:     "admin",
			Email:        "admin@bookstore.com",
			Firstname:    "Admin",
			Lastname:     "User",
			Phone:        "9876543210",
			Address:      "123 Admin Street",
			Usertype:     model.UsertypeAdmin,
			PasswordHash: mustHash("admin"),
		},
		{
			Username:     "shashi",
			Email:        "shashi@gmail.com",
			Firstname:    "Shashi",
			Lastname:     "Raj",
			Phone:        "9876543211",
			Address:      "221B Baker Street",
			Usertype:     model.UsertypeCustomer,
			PasswordHash: mustHash("shashi"),
		},
	}
}

func demoBooks() []model.Book {
	return []model.Book{
		{Barcode: "9781593278281", Title: "The Rust Programming Language", Author: "Steve Klabnik, Carol Nichols", PriceCents: 3599, Quantity: 12, Category: "programming", Description: "The official book on Rust, covering ownership, traits and concurrency.", ImageURL: "https://images.bookstore.dev/rust.jpg", Rating: 4.7, Reviews: 412},
		{Barcode: "9780134190440", Title: "The Go Programming Language", Author: "Alan A. A. Donovan, Brian W. Kernighan", PriceCents: 3299, Quantity: 8, Category: "programming", Description: "The authoritative resource for writing clear, idiomatic Go.", ImageURL: "https://images.bookstore.dev/gopl.jpg", Rating: 4.6, Reviews: 387},
		{Barcode: "9780132350884", Title: "Clean Code", Author: "Robert C. Martin", PriceCents: 2899, Quantity: 20, Category: "programming", Description: "A handbook of agile software craftsmanship.", ImageURL: "https://images.bookstore.dev/cleancode.jpg", Rating: 4.2, Reviews: 958},
		{Barcode: "9781449373320", Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", PriceCents: 4199, Quantity: 6, Category: "databases", Description: "The big ideas behind reliable, scalable and maintainable systems.", ImageURL: "https://images.bookstore.dev/ddia.jpg", Rating: 4.8, Reviews: 1203},
		{Barcode: "9780131103627", Title: "The C Programming Language", Author: "Brian W. Kernighan, Dennis M. Ritchie", PriceCents: 2499, Quantity: 15, Category: "programming", Description: "The classic K&R reference, second edition.", ImageURL: "https://images.bookstore.dev/knr.jpg", Rating: 4.5, Reviews: 677},
		{Barcode: "9780135957059", Title: "The Pragmatic Programmer", Author: "David Thomas, Andrew Hunt", PriceCents: 3099, Quantity: 10, Category: "programming", Description: "Your journey to mastery, 20th anniversary edition.", ImageURL: "https://images.bookstore.dev/pragprog.jpg", Rating: 4.4, Reviews: 845},
		{Barcode: "9780262035613", Title: "Deep Learning", Author: "Ian Goodfellow, Yoshua Bengio, Aaron Courville", PriceCents: 5499, Quantity: 4, Category: "ai", Description: "Comprehensive introduction to deep learning methods.", ImageURL: "https://images.bookstore.dev/dl.jpg", Rating: 4.3, Reviews: 522},
		{Barcode: "9781491950357", Title: "Database Internals", Author: "Alex Petrov", PriceCents: 3899, Quantity: 7, Category: "databases", Description: "A deep dive into how distributed data systems work.", ImageURL: "https://images.bookstore.dev/dbint.jpg", Rating: 4.5, Reviews: 289},
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
