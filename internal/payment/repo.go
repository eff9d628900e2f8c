package payment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopkit/shop-services/internal/apperr"
)

// DB matches the *pgxpool.Pool methods the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repo struct{ DB DB }

func (r *Repo) Create(ctx context.Context, p *Payment) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payments(id, order_id, total_cents, currency, method, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.OrderID, p.TotalCents, p.Currency, p.Method, p.Description, p.Status, p.CreatedAt)
	return err
}

// ByOrder returns the most recent payment recorded for orderID.
func (r *Repo) ByOrder(ctx context.Context, orderID int64) (*Payment, error) {
	var p Payment
	err := r.DB.QueryRow(ctx, `
		SELECT id, order_id, total_cents, currency, method, description, status, created_at
		FROM payments WHERE order_id=$1
		ORDER BY created_at DESC LIMIT 1`, orderID).
		Scan(&p.ID, &p.OrderID, &p.TotalCents, &p.Currency, &p.Method, &p.Description, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFoundf("no payment found for order %d", orderID)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
