package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store. Items are kept in insertion order so that
// offset paging is stable.
type MemStore struct {
	mu     sync.RWMutex
	items  []Item
	byID   map[string]int
	byName map[string]string

	now   func() time.Time
	newID func() string
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:   make(map[string]int),
		byName: make(map[string]string),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List implements Store.
func (s *MemStore) List(ctx context.Context, limit, offset uint64) ([]Item, uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := uint64(len(s.items))
	if offset >= total || limit == 0 {
		return []Item{}, total, nil
	}
	end := total
	if limit < total-offset {
		end = offset + limit
	}
	out := make([]Item, end-offset)
	copy(out, s.items[offset:end])
	return out, total, nil
}

// Get implements Store.
func (s *MemStore) Get(ctx context.Context, id string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[idx], nil
}

// Create implements Store.
func (s *MemStore) Create(ctx context.Context, name string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, err
	}
	key := strings.ToLower(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byName[key]; ok {
		return Item{}, fmt.Errorf("%w: %q is %s", ErrDuplicate, name, id)
	}
	it := Item{ID: s.newID(), Name: name, CreatedAt: s.now().UTC()}
	s.byID[it.ID] = len(s.items)
	s.byName[key] = it.ID
	s.items = append(s.items, it)
	return it, nil
}

// Count implements Store.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
