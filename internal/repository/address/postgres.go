// Package address stores the per-user address book.
package address

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

const columns = `id, label, name, phone, pincode, city, state, address_line`

type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{pool: pool, logger: logger}
}

// List returns the user's addresses in the order they were added.
func (r *Postgres) List(ctx context.Context, userID string) ([]domain.Address, error) {
	q := `SELECT ` + columns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Error("address repo: list", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Postgres) Get(ctx context.Context, userID, id string) (domain.Address, error) {
	q := `SELECT ` + columns + ` FROM addresses WHERE user_id = $1 AND id = $2`
	a, err := scanAddress(r.pool.QueryRow(ctx, q, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Address{}, domain.ErrNotFound
		}
		r.logger.Error("address repo: get", zap.String("user_id", userID), zap.String("address_id", id), zap.Error(err))
		return domain.Address{}, err
	}
	return a, nil
}

func (r *Postgres) Insert(ctx context.Context, userID string, a domain.Address) error {
	const q = `
INSERT INTO addresses (id, user_id, label, name, phone, pincode, city, state, address_line)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	if _, err := r.pool.Exec(ctx, q, a.ID, userID, a.Label, a.Name, a.Phone, a.Pincode, a.City, a.State, a.Line); err != nil {
		r.logger.Error("address repo: insert", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Postgres) Update(ctx context.Context, userID string, a domain.Address) error {
	const q = `
UPDATE addresses SET
    label = $3,
    name = $4,
    phone = $5,
    pincode = $6,
    city = $7,
    state = $8,
    address_line = $9,
    updated_at = now()
WHERE user_id = $1 AND id = $2
`
	tag, err := r.pool.Exec(ctx, q, userID, a.ID, a.Label, a.Name, a.Phone, a.Pincode, a.City, a.State, a.Line)
	if err != nil {
		r.logger.Error("address repo: update", zap.String("user_id", userID), zap.String("address_id", a.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Postgres) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		r.logger.Error("address repo: delete", zap.String("user_id", userID), zap.String("address_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAddress(row pgx.Row) (domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.Label, &a.Name, &a.Phone, &a.Pincode, &a.City, &a.State, &a.Line)
	return a, err
}
