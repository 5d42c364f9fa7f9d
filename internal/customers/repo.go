package customers

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
		CREATE TABLE IF NOT EXISTS customers(
			id               BIGSERIAL PRIMARY KEY,
			company_name     TEXT NOT NULL,
			email            TEXT NOT NULL,
			phone            TEXT NOT NULL,
			billing_address  TEXT NOT NULL,
			shipping_address TEXT NOT NULL
		)`)
	return err
}

// Seed inserts the starter customer on an empty table only.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := r.DB.Exec(ctx, `
		INSERT INTO customers(company_name, email, phone, billing_address, shipping_address)
		VALUES ($1,$2,$3,$4,$5)`,
		"EASV", "trialemail@easv.dk", "1345 5684",
		"Havnegade 63 B, 6700, Esbjerg", "Havnegade 63 B, 6700, Esbjerg")
	return err
}

func (r *Repo) GetAll(ctx context.Context) ([]Customer, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, company_name, email, phone, billing_address, shipping_address
		FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.Email, &c.Phone, &c.BillingAddress, &c.ShippingAddress); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Customer, error) {
	var c Customer
	err := r.DB.QueryRow(ctx, `
		SELECT id, company_name, email, phone, billing_address, shipping_address
		FROM customers WHERE id=$1`, id).
		Scan(&c.ID, &c.CompanyName, &c.Email, &c.Phone, &c.BillingAddress, &c.ShippingAddress)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Add(ctx context.Context, c *Customer) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO customers(company_name, email, phone, billing_address, shipping_address)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		c.CompanyName, c.Email, c.Phone, c.BillingAddress, c.ShippingAddress).
		Scan(&c.ID)
}

func (r *Repo) Edit(ctx context.Context, c *Customer) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE customers
		SET company_name=$2, email=$3, phone=$4, billing_address=$5, shipping_address=$6
		WHERE id=$1`,
		c.ID, c.CompanyName, c.Email, c.Phone, c.BillingAddress, c.ShippingAddress)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
