// Package service provides the item catalog use cases consumed by the HTTP
// API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/okian/httpkit/internal/adapters/repository"
	"github.com/okian/httpkit/pkg/logger"
	"github.com/okian/httpkit/pkg/metrics"
	"github.com/okian/httpkit/pkg/pagination"
)

const (
	defaultMaxPageLimit = 100
	maxNameLength       = 100
)

// Service implements the API dependencies for the item catalog.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	maxPageLimit     uint64
	defaultPageLimit uint64
	seedItems        []string

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMaxPageLimit caps the page size of ListItems.
func WithMaxPageLimit(n uint64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPageLimit = n
		}
	}
}

// WithDefaultPageLimit sets the page size used when a request omits limit.
// Zero means the maximum.
func WithDefaultPageLimit(n uint64) Option {
	return func(s *Service) {
		s.defaultPageLimit = n
	}
}

// WithSeedItems sets item names created on Start.
func WithSeedItems(names []string) Option {
	return func(s *Service) {
		s.seedItems = append([]string(nil), names...)
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxPageLimit: defaultMaxPageLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store and creates the seed items. Seeds that already
// exist are skipped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}

	for _, name := range s.seedItems {
		if _, err := s.create(ctx, name); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				s.logger.Debug(ctx, "seed item exists", logger.String("name", name))
				continue
			}
			return fmt.Errorf("seed %q: %w", name, err)
		}
	}

	s.started = true
	s.logger.Info(ctx, "catalog service started",
		logger.Int("items", s.store.Count(ctx)),
		logger.Uint64("maxPageLimit", s.maxPageLimit),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// MaxPageLimit returns the configured page size cap.
func (s *Service) MaxPageLimit() uint64 { return s.maxPageLimit }

// ListItems returns one page of items. The requested limit is clamped to the
// configured maximum.
func (s *Service) ListItems(ctx context.Context, q pagination.Query) (pagination.Response[repository.Item], error) {
	store, err := s.ready()
	if err != nil {
		return pagination.Response[repository.Item]{}, err
	}
	if q.Limit == nil && s.defaultPageLimit > 0 {
		q.Limit = pagination.Limit(s.defaultPageLimit)
	}
	limit := q.EffectiveLimit(s.maxPageLimit)
	if q.Limit != nil && *q.Limit > limit {
		metrics.RecordLimitClamped()
	}
	offset := q.EffectiveOffset()

	items, total, err := store.List(ctx, limit, offset)
	if err != nil {
		return pagination.Response[repository.Item]{}, fmt.Errorf("list items: %w", err)
	}
	page := pagination.New(items, total, pagination.Limit(limit), offset)
	metrics.RecordPage(len(page.Data), page.HasMore)
	return page, nil
}

// GetItem returns a single item by ID.
func (s *Service) GetItem(ctx context.Context, id string) (repository.Item, error) {
	store, err := s.ready()
	if err != nil {
		return repository.Item{}, err
	}
	return store.Get(ctx, id)
}

// CreateItem validates name and stores a new item.
func (s *Service) CreateItem(ctx context.Context, name string) (repository.Item, error) {
	if _, err := s.ready(); err != nil {
		return repository.Item{}, err
	}
	it, err := s.create(ctx, name)
	if err != nil {
		return repository.Item{}, err
	}
	s.logger.Debug(ctx, "item created", logger.String("id", it.ID), logger.String("name", it.Name))
	return it, nil
}

// Count returns the number of items in the catalog.
func (s *Service) Count(ctx context.Context) int {
	store, err := s.ready()
	if err != nil {
		return 0
	}
	return store.Count(ctx)
}

func (s *Service) create(ctx context.Context, name string) (repository.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Item{}, &InvalidItemError{Field: "name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return repository.Item{}, &InvalidItemError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", maxNameLength),
		}
	}
	return s.store.Create(ctx, name)
}

func (s *Service) ready() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}
