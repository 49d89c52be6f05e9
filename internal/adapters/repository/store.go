// Package repository defines the item catalog store and an in-memory
// implementation of it.
package repository

import (
	"context"
	"time"
)

// Item is a catalog entry.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store provides read/write access to the catalog.
type Store interface {
	// List returns up to limit items starting at offset, in insertion order,
	// together with the total number of items.
	List(ctx context.Context, limit, offset uint64) ([]Item, uint64, error)

	// Get returns the item with the given ID.
	// Returns ErrNotFound if the item is unknown.
	Get(ctx context.Context, id string) (Item, error)

	// Create stores a new item. Names are unique, compared case-insensitively.
	// Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, name string) (Item, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) int
}
