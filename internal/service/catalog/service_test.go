package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "storefront/internal/catalog"
	"storefront/internal/domain"
)

type stubSource struct {
	products []domain.Product
	err      error
	calls    atomic.Int32
	gate     chan struct{}
}

func (s *stubSource) Products(ctx context.Context) ([]domain.Product, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.products, s.err
}

func (s *stubSource) Product(ctx context.Context, slug string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sampleProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Slug: "tee", Title: "Tee", Price: 799},
		{ID: "2", Slug: "shirt", Title: "Shirt", Price: 1499},
		{ID: "3", Slug: "cap", Title: "Cap", Price: 399},
	}
}

func TestService_StartsLoadingThenLoaded(t *testing.T) {
	src := &stubSource{products: sampleProducts()}
	svc := New(src, time.Second, nil)
	assert.Equal(t, StateLoading, svc.Status().State)

	require.NoError(t, svc.Refresh(context.Background()))
	st := svc.Status()
	assert.Equal(t, StateLoaded, st.State)
	assert.Equal(t, 3, st.Count)
	assert.False(t, st.LoadedAt.IsZero())
}

func TestService_FailureDegradesToEmpty(t *testing.T) {
	src := &stubSource{products: sampleProducts()}
	svc := New(src, time.Second, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	src.err = errors.New("upstream down")
	err := svc.Refresh(context.Background())
	require.Error(t, err)

	st := svc.Status()
	assert.Equal(t, StateFailed, st.State)
	assert.Equal(t, 0, st.Count)
	assert.Equal(t, "upstream down", st.Error)
	assert.Empty(t, svc.Browse(engine.Filter{}))
}

func TestService_ConcurrentRefreshSharesLoad(t *testing.T) {
	src := &stubSource{products: sampleProducts(), gate: make(chan struct{})}
	svc := New(src, time.Second, nil)

	var wg, started sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_ = svc.Refresh(context.Background())
		}()
	}
	started.Wait()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, StateLoaded, svc.Status().State)
}

func TestService_BrowseAndGet(t *testing.T) {
	src := &stubSource{products: sampleProducts()}
	svc := New(src, time.Second, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	sorted := svc.Browse(engine.Filter{Sort: engine.SortLowHigh, MaxPrice: engine.Ceiling(1000)})
	require.Len(t, sorted, 2)
	assert.Equal(t, "Cap", sorted[0].Title)

	byID, err := svc.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "shirt", byID.Slug)

	bySlug, err := svc.Get(context.Background(), "cap")
	require.NoError(t, err)
	assert.Equal(t, "3", bySlug.ID)

	_, err = svc.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestService_CancelledCallerKeepsCatalog(t *testing.T) {
	src := &stubSource{products: sampleProducts()}
	svc := New(src, time.Second, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = svc.Refresh(ctx)

	assert.Eventually(t, func() bool {
		st := svc.Status()
		return src.calls.Load() == 2 && st.State == StateLoaded && st.Count == 3
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, svc.Products(), 3)
}

func TestService_LoadTimeout(t *testing.T) {
	src := &blockingSource{}
	svc := New(src, 20*time.Millisecond, nil)

	err := svc.Refresh(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StateFailed, svc.Status().State)
}

// blockingSource never answers until its context ends.
type blockingSource struct{}

func (blockingSource) Products(ctx context.Context) ([]domain.Product, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingSource) Product(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}
