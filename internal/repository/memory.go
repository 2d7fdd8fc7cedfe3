package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Giftonsam/online-bookstore-app-sub001/internal/model"
)

// Memory implements every repository interface against in-process maps.
// It backs the server when no DB_DSN is configured and doubles as the
// test fixture. All methods are safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	users     map[uint]model.User
	books     map[uint]model.Book
	carts     map[uint][]model.CartItem // keyed by user id
	wishlists map[uint][]uint           // keyed by user id, insertion order
	orders    map[uint]model.Order

	nextUserID  uint
	nextBookID  uint
	nextCartID  uint
	nextOrderID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:     make(map[uint]model.User),
		books:     make(map[uint]model.Book),
		carts:     make(map[uint][]model.CartItem),
		wishlists: make(map[uint][]uint),
		orders:    make(map[uint]model.Order),
	}
}

// Each aggregate gets a small typed view of the shared store, so one
// struct can satisfy five interfaces with clashing method names.

// --- users ---

type memoryUsers Memory

func (m *Memory) Users() UserRepository { return (*memoryUsers)(m) }

func (r *memoryUsers) Create(ctx context.Context, u *model.User) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	m.users[u.ID] = *u
	return nil
}

func (r *memoryUsers) GetByID(ctx context.Context, id uint) (*model.User, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) Update(ctx context.Context, u *model.User) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	u.UpdatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (r *memoryUsers) GetAll(ctx context.Context) ([]model.User, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- books ---

type memoryBooks Memory

func (m *Memory) Books() BookRepository { return (*memoryBooks)(m) }

func (r *memoryBooks) Create(ctx context.Context, b *model.Book) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.books {
		if b.Barcode != "" && existing.Barcode == b.Barcode {
			return ErrDuplicate
		}
	}
	m.nextBookID++
	b.ID = m.nextBookID
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	m.books[b.ID] = *b
	return nil
}

func (r *memoryBooks) GetByID(ctx context.Context, id uint) (*model.Book, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryBooks) GetAll(ctx context.Context) ([]model.Book, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryBooks) Update(ctx context.Context, b *model.Book) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	m.books[b.ID] = *b
	return nil
}

func (r *memoryBooks) Delete(ctx context.Context, id uint) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return ErrNotFound
	}
	delete(m.books, id)
	return nil
}

// --- cart ---

type memoryCarts Memory

func (m *Memory) Carts() CartRepository { return (*memoryCarts)(m) }

func (r *memoryCarts) GetLine(ctx context.Context, userID, bookID uint) (*model.CartItem, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, it := range m.carts[userID] {
		if it.BookID == bookID {
			it := it
			return &it, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCarts) GetByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := m.carts[userID]
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *memoryCarts) Save(ctx context.Context, item *model.CartItem) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	items := m.carts[item.UserID]
	for i, it := range items {
		if it.BookID == item.BookID {
			item.ID = it.ID
			item.CreatedAt = it.CreatedAt
			item.UpdatedAt = now
			items[i] = *item
			return nil
		}
	}
	m.nextCartID++
	item.ID = m.nextCartID
	item.CreatedAt, item.UpdatedAt = now, now
	m.carts[item.UserID] = append(items, *item)
	return nil
}

func (r *memoryCarts) Delete(ctx context.Context, userID, bookID uint) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.carts[userID]
	for i, it := range items {
		if it.BookID == bookID {
			m.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryCarts) Clear(ctx context.Context, userID uint) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

// --- wishlist ---

type memoryWishlists Memory

func (m *Memory) Wishlists() WishlistRepository { return (*memoryWishlists)(m) }

func (r *memoryWishlists) Add(ctx context.Context, userID, bookID uint) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.wishlists[userID] {
		if id == bookID {
			return nil
		}
	}
	m.wishlists[userID] = append(m.wishlists[userID], bookID)
	return nil
}

func (r *memoryWishlists) Remove(ctx context.Context, userID, bookID uint) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.wishlists[userID]
	for i, id := range ids {
		if id == bookID {
			m.wishlists[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryWishlists) Contains(ctx context.Context, userID, bookID uint) (bool, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.wishlists[userID] {
		if id == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryWishlists) GetByUser(ctx context.Context, userID uint) ([]uint, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.wishlists[userID]
	out := make([]uint, len(ids))
	copy(out, ids)
	return out, nil
}

// --- orders ---

type memoryOrders Memory

func (m *Memory) Orders() OrderRepository { return (*memoryOrders)(m) }

func (r *memoryOrders) Create(ctx context.Context, o *model.Order) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextOrderID++
	o.ID = m.nextOrderID
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	for i := range o.Items {
		o.Items[i].ID = uint(i + 1)
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = make([]model.OrderItem, len(o.Items))
	copy(stored.Items, o.Items)
	m.orders[o.ID] = stored
	return nil
}

func (r *memoryOrders) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := o
	out.Items = make([]model.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return &out, nil
}

func (r *memoryOrders) GetByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memoryOrders) GetAll(ctx context.Context) ([]model.Order, error) {
	m := (*Memory)(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memoryOrders) UpdateStatus(ctx context.Context, id uint, status string) error {
	m := (*Memory)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	m.orders[id] = o
	return nil
}
