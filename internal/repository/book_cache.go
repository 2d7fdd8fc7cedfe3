package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

// CachedBooks is a read-through redis cache over a BookRepository.
// Redis failures are logged and the call falls back to the real repo,
// so a dead cache never takes the catalog down. Missing ids are cached
// negatively for a shorter TTL.
type CachedBooks struct {
	real  BookRepository
	redis *redis.Client
	ttl   time.Duration
}

const notFoundMarker = "notfound"

func NewCachedBooks(real BookRepository, rdb *redis.Client) *CachedBooks {
	return &CachedBooks{real: real, redis: rdb, ttl: 5 * time.Minute}
}

func bookKey(id uint) string { return fmt.Sprintf("book:%d", id) }

func (c *CachedBooks) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	key := bookKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, ErrNotFound
		}
		var b model.Book
		if err := json.Unmarshal(data, &b); err != nil {
			slog.Warn("bad cached book, falling through to repo", "key", key, "error", err)
			break
		}
		return &b, nil
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("redis get failed, falling through to repo", "key", key, "error", err)
	}

	b, err := c.real.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, time.Minute).Err(); setErr != nil {
				slog.Warn("redis set failed", "key", key, "error", setErr)
			}
		}
		return nil, err
	}

	if data, err := json.Marshal(b); err == nil {
		if setErr := c.redis.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			slog.Warn("redis set failed", "key", key, "error", setErr)
		}
	}
	return b, nil
}

func (c *CachedBooks) GetAll(ctx context.Context) ([]model.Book, error) {
	const key = "books:all"

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var books []model.Book
		if err := json.Unmarshal(data, &books); err == nil {
			return books, nil
		}
		slog.Warn("bad cached book list, falling through to repo", "error", err)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("redis get failed, falling through to repo", "key", key, "error", err)
	}

	books, err := c.real.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(books); err == nil {
		if setErr := c.redis.Set(ctx, key, data, c.ttl).Err(); setErr != nil {
			slog.Warn("redis set failed", "key", key, "error", setErr)
		}
	}
	return books, nil
}

func (c *CachedBooks) Create(ctx context.Context, b *model.Book) error {
	if err := c.real.Create(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

func (c *CachedBooks) Update(ctx context.Context, b *model.Book) error {
	if err := c.real.Update(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

func (c *CachedBooks) Delete(ctx context.Context, id uint) error {
	if err := c.real.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachedBooks) invalidate(ctx context.Context, id uint) {
	if err := c.redis.Del(ctx, bookKey(id), "books:all").Err(); err != nil {
		slog.Warn("redis invalidation failed", "book_id", id, "error", err)
	}
}
