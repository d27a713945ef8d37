package coupon

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgres_UpsertAndList(t *testing.T) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, migrate.Apply(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE coupons`)
	require.NoError(t, err)

	repo := NewPostgres(pool, nil)
	require.NoError(t, repo.Upsert(ctx, domain.Coupon{Code: " getcash10 ", Amount: 50, MinSubtotal: 999, Active: true}))
	require.NoError(t, repo.Upsert(ctx, domain.Coupon{Code: "GETCASH10", Amount: 100, MinSubtotal: 999, Active: true}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GETCASH10", list[0].Code)
	assert.Equal(t, int64(100), list[0].Amount)
	assert.True(t, list[0].Active)
}
