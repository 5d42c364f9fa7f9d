package products

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
		CREATE TABLE IF NOT EXISTS products(
			id             BIGSERIAL PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL DEFAULT '',
			price          DOUBLE PRECISION NOT NULL,
			items_in_stock INT NOT NULL CHECK (items_in_stock >= 0)
		)`)
	return err
}

// Seed inserts the starter catalog on an empty table only.
func (r *Repo) Seed(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	seed := []Product{
		{Name: "Hammer", Price: 100, ItemsInStock: 10, Category: "Hand Tools",
			Description: "Get all of those tough jobs done with the help of this hammer."},
		{Name: "Screwdriver", Price: 70, ItemsInStock: 20, Category: "Hand Tools",
			Description: "A handy tool to keep on hand in the workshop, around the house and elsewhere."},
		{Name: "Drill", Price: 500, ItemsInStock: 2, Category: "Tools",
			Description: "Motorized drill running on rechargeable lithium-ion batteries."},
	}
	for _, p := range seed {
		if _, err := r.DB.Exec(ctx, `
			INSERT INTO products(name, description, category, price, items_in_stock)
			VALUES ($1,$2,$3,$4,$5)`,
			p.Name, p.Description, p.Category, p.Price, p.ItemsInStock); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, category, price, items_in_stock
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.ItemsInStock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, description, category, price, items_in_stock
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.ItemsInStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Add(ctx context.Context, p *Product) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, category, price, items_in_stock)
		VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		p.Name, p.Description, p.Category, p.Price, p.ItemsInStock).
		Scan(&p.ID)
}

func (r *Repo) Edit(ctx context.Context, p *Product) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, price=$5, items_in_stock=$6
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.ItemsInStock)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
