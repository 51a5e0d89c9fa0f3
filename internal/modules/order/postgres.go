package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/P-N-S-U/backend/internal/platform/database"
	"github.com/P-N-S-U/backend/internal/platform/errs"
)

const orderColumns = `id, buyer_id, total_price, status, created_at, updated_at`

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, buyer_id, total_price, status)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		o.ID, o.BuyerID, o.TotalPrice, o.Status).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", database.Translate(err))
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, position, listing_id, producer_id, name, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			item.ID, o.ID, item.Position, item.ListingID, item.ProducerID,
			item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	o := &Order{}
	err = r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid).
		Scan(&o.ID, &o.BuyerID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, database.Translate(err)
	}
	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListOrdersByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
}

func (r *postgresRepo) ListOrdersByProducer(ctx context.Context, producerID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE id IN (SELECT order_id FROM order_items WHERE producer_id=$1)
		ORDER BY created_at DESC`, producerID)
}

func (r *postgresRepo) ListOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the lines of every order in one query.
func (r *postgresRepo) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, position, listing_id, producer_id, name, quantity, unit_price
		FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Position, &item.ListingID,
			&item.ProducerID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if o := byID[item.OrderID]; o != nil {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}
