package products

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ItemsInStock int     `json:"itemsInStock"`
}

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Add(ctx context.Context, p *Product) error
	Edit(ctx context.Context, p *Product) error
	Remove(ctx context.Context, id int64) error
}
