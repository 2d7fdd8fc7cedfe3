package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
	"github.com/Giftonsam/online-bookstore-app-sub001/internal/repository"
)

// newSeededMemory returns the in-memory store loaded with the demo
// users and catalog.
func newSeededMemory(t *testing.T) *repository.Memory {
	t.Helper()
	mem := repository.NewMemory()
	require.NoError(t, repository.SeedDemo(context.Background(), mem.Users(), mem.Books()))
	return mem
}

func findBook(t *testing.T, books repository.BookRepository, title string) model.Book {
	t.Helper()
	all, err := books.GetAll(context.Background())
	require.NoError(t, err)
	for _, b := range all {
		if b.Title == title {
			return b
		}
	}
	t.Fatalf("book %q not in seed data", title)
	return model.Book{}
}

func customerID(t *testing.T, users repository.UserRepository) uint {
	t.Helper()
	u, err := users.GetByUsername(context.Background(), "shashi")
	require.NoError(t, err)
	return u.ID
}
