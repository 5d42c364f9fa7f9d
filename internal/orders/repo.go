package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Repository = (*Repo)(nil)

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders(
			id                      BIGSERIAL PRIMARY KEY,
			customer_id             BIGINT NOT NULL,
			order_date              TIMESTAMPTZ,
			status                  TEXT NOT NULL,
			shipping_charge         DOUBLE PRECISION,
			estimated_delivery_date TIMESTAMPTZ,
			product_id              BIGINT NOT NULL,
			quantity                INT NOT NULL CHECK (quantity > 0)
		)`)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, `CREATE INDEX IF NOT EXISTS orders_customer_idx ON orders(customer_id)`)
	return err
}

const orderColumns = `id, customer_id, order_date, status, shipping_charge, estimated_delivery_date, product_id, quantity`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.CustomerID, &o.Date, &o.Status, &o.ShippingCharge, &o.EstimatedDeliveryDate, &o.ProductID, &o.Quantity)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) GetAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
}

func (r *Repo) GetByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY id`, customerID)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repo) Add(ctx context.Context, o *Order) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO orders(customer_id, order_date, status, shipping_charge, estimated_delivery_date, product_id, quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		o.CustomerID, o.Date, o.Status, o.ShippingCharge, o.EstimatedDeliveryDate, o.ProductID, o.Quantity).
		Scan(&o.ID)
}

func (r *Repo) Edit(ctx context.Context, o *Order) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders
		SET customer_id=$2, order_date=$3, status=$4, shipping_charge=$5, estimated_delivery_date=$6, product_id=$7, quantity=$8
		WHERE id=$1`,
		o.ID, o.CustomerID, o.Date, o.Status, o.ShippingCharge, o.EstimatedDeliveryDate, o.ProductID, o.Quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
