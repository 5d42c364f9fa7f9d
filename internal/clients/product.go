package clients

import (
	"context"
	"fmt"
	"net/http"
)

// Product is the product service's record as seen on the wire. The
// order workflow only reads ItemsInStock, but PUT pushes the whole
// record back, so all fields round-trip.
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	ItemsInStock int     `json:"itemsInStock"`
}

type ProductClient struct {
	base string
	hc   *http.Client
}

// NewProductClient builds a client for the product service reachable
// at base, e.g. "http://localhost:8082/products".
func NewProductClient(base string) *ProductClient {
	return &ProductClient{base: base, hc: newHTTPClient()}
}

func (c *ProductClient) Product(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := getJSON(ctx, c.hc, fmt.Sprintf("%s/%d", c.base, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *ProductClient) UpdateProduct(ctx context.Context, p *Product) error {
	return putJSON(ctx, c.hc, fmt.Sprintf("%s/%d", c.base, p.ID), p)
}
