package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the default UUIDv4 generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
