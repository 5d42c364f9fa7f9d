package customers

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("customer not found")

type Customer struct {
	ID              int64  `json:"id"`
	CompanyName     string `json:"companyName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BillingAddress  string `json:"billingAddress"`
	ShippingAddress string `json:"shippingAddress"`
}

type Repository interface {
	GetAll(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Add(ctx context.Context, c *Customer) error
	Edit(ctx context.Context, c *Customer) error
	Remove(ctx context.Context, id int64) error
}
