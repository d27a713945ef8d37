// Package catalog holds the loaded product list and serves filtered views of it.
package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	engine "storefront/internal/catalog"
	"storefront/internal/catalog/remote"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

// State reports the outcome of the most recent load.
type State string

const (
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateFailed  State = "failed"
)

// Source is where products come from.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, slug string) (*domain.Product, error)
}

type remoteSource struct {
	client *remote.Client
	query  remote.Query
}

func RemoteSource(client *remote.Client, q remote.Query) Source {
	return remoteSource{client: client, query: q}
}

func (s remoteSource) Products(ctx context.Context) ([]domain.Product, error) {
	return s.client.FetchProducts(ctx, s.query)
}

func (s remoteSource) Product(ctx context.Context, slug string) (*domain.Product, error) {
	return s.client.FetchBySlug(ctx, slug)
}

type repoSource struct {
	repo productrepo.Repository
}

func RepositorySource(repo productrepo.Repository) Source {
	return repoSource{repo: repo}
}

func (s repoSource) Products(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Product(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// Status describes the current list.
type Status struct {
	State    State     `json:"state"`
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loadedAt,omitempty"`
	Error    string    `json:"error,omitempty"`
}

type Service struct {
	src     Source
	timeout time.Duration
	logger  *zap.Logger
	group   singleflight.Group

	mu       sync.RWMutex
	products []domain.Product
	state    State
	loadedAt time.Time
	lastErr  error
}

// DefaultLoadTimeout bounds one upstream load when New gets no timeout.
const DefaultLoadTimeout = 15 * time.Second

func New(src Source, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Service{src: src, timeout: timeout, logger: logger, state: StateLoading}
}

// Refresh reloads the list. Concurrent callers share one upstream load. On failure the
// list is emptied and the state becomes failed. The load is detached from ctx and bounded
// by the service timeout: a caller that goes away stops waiting, the load carries on.
func (s *Service) Refresh(ctx context.Context) error {
	ch := s.group.DoChan("refresh", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		s.mu.Lock()
		s.state = StateLoading
		s.mu.Unlock()

		products, err := s.src.Products(loadCtx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.products = nil
			s.state = StateFailed
			s.lastErr = err
			s.logger.Error("catalog load failed", zap.Error(err))
			return nil, err
		}
		s.products = products
		s.state = StateLoaded
		s.loadedAt = time.Now().UTC()
		s.lastErr = nil
		s.logger.Info("catalog loaded", zap.Int("count", len(products)))
		return nil, nil
	})
	select {
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("catalog refresh shared")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{State: s.state, Count: len(s.products), LoadedAt: s.loadedAt}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// Products returns a copy of the loaded list in source order.
func (s *Service) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// Browse runs the filter/sort engine over the loaded list.
func (s *Service) Browse(f engine.Filter) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.Apply(s.products, f)
}

// Get finds a product by id or slug in the loaded list, falling back to the source by slug.
func (s *Service) Get(ctx context.Context, ref string) (*domain.Product, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("product reference required")
	}
	s.mu.RLock()
	for _, p := range s.products {
		if p.ID == ref || p.Slug == ref {
			found := p
			s.mu.RUnlock()
			return &found, nil
		}
	}
	s.mu.RUnlock()
	return s.src.Product(ctx, ref)
}
