package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectColumns = `id, slug, title, price, original_price, images, categories, badge, sizes, fits, colors, in_stock, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + selectColumns + `
FROM products
WHERE is_active
ORDER BY created_at DESC, id
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: list", zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `SELECT ` + selectColumns + `
FROM products
WHERE slug = $1 AND is_active
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: get not found", zap.String("slug", slug))
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, title, price, original_price, images, categories, badge, sizes, fits, colors, in_stock, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, TRUE)
ON CONFLICT (id) DO UPDATE SET
    slug = EXCLUDED.slug,
    title = EXCLUDED.title,
    price = EXCLUDED.price,
    original_price = EXCLUDED.original_price,
    images = EXCLUDED.images,
    categories = EXCLUDED.categories,
    badge = EXCLUDED.badge,
    sizes = EXCLUDED.sizes,
    fits = EXCLUDED.fits,
    colors = EXCLUDED.colors,
    in_stock = EXCLUDED.in_stock,
    is_active = TRUE
RETURNING created_at
`
	if product.ID == "" || product.Slug == "" {
		return nil, fmt.Errorf("product repo: id and slug required")
	}
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Slug,
		product.Title,
		product.Price,
		product.OriginalPrice,
		nonNil(product.Images),
		nonNil(product.Categories),
		product.Badge,
		nonNil(product.Sizes),
		nonNil(product.Fits),
		nonNil(product.Colors),
		product.InStock,
	).Scan(&res.CreatedAt)
	if err != nil {
		r.logger.Error("product repo: upsert", zap.String("id", product.ID), zap.String("slug", product.Slug), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: upserted", zap.String("id", res.ID), zap.String("slug", res.Slug))
	return &res, nil
}

func (r *postgresRepo) Deactivate(ctx context.Context, slug string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active = FALSE WHERE slug = $1`, slug)
	if err != nil {
		r.logger.Error("product repo: deactivate", zap.String("slug", slug), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Price, &p.OriginalPrice, &p.Images, &p.Categories,
		&p.Badge, &p.Sizes, &p.Fits, &p.Colors, &p.InStock, &p.CreatedAt)
	return p, err
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
