package shopping

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopkit/shop-services/internal/apperr"
)

// DB matches the *pgxpool.Pool methods the repository uses, so tests can
// substitute a fake.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repo struct{ DB DB }

// Cart loads the cart and its lines for userID.
func (r *Repo) Cart(ctx context.Context, userID int64) (*Cart, error) {
	var c Cart
	err := r.DB.QueryRow(ctx, `
		SELECT user_id, total_cents, created_at, updated_at
		FROM carts WHERE user_id=$1`, userID).
		Scan(&c.UserID, &c.TotalCents, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("cart not found for user %d", userID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT product_id, quantity, unit_price_cents
		FROM cart_items WHERE user_id=$1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPriceCents); err != nil {
			return nil, err
		}
		c.Items = append(c.Items, it)
	}
	return &c, rows.Err()
}

// Save upserts the cart row and replaces its lines in one transaction.
func (r *Repo) Save(ctx context.Context, c *Cart) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO carts(user_id, total_cents, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET total_cents=EXCLUDED.total_cents, updated_at=EXCLUDED.updated_at`,
		c.UserID, c.TotalCents, c.CreatedAt, c.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id=$1`, c.UserID); err != nil {
		return err
	}
	for _, it := range c.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO cart_items(user_id, product_id, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4)`,
			c.UserID, it.ProductID, it.Quantity, it.UnitPriceCents); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
