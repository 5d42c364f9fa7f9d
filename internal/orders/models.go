package orders

import (
	"context"
	"errors"
	"time"
)

// Order state the workflow maintains. Date, ShippingCharge and
// EstimatedDeliveryDate are optional on the wire; once an order is
// persisted as "requested" the workflow has populated the latter two.
type Order struct {
	ID                    int64      `json:"id"`
	CustomerID            int64      `json:"customerId"`
	Date                  *time.Time `json:"date,omitempty"`
	Status                Status     `json:"status"`
	ShippingCharge        *float64   `json:"shippingCharge,omitempty"`
	EstimatedDeliveryDate *time.Time `json:"estimatedDeliveryDate,omitempty"`
	ProductID             int64      `json:"productId"`
	Quantity              int        `json:"quantity"`
}

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidInput      = errors.New("invalid order payload")
	ErrCustomerNotFound  = errors.New("customer does not exist")
	ErrProductNotFound   = errors.New("product does not exist")
	ErrNoCreditStanding  = errors.New("customer has an open requested order")
	ErrInsufficientStock = errors.New("not enough items in stock")

	// ErrPartialFailure marks a fulfillment where the remote stock
	// update and the local order edit did not both succeed. It is
	// never retried automatically: retrying risks decrementing stock
	// twice.
	ErrPartialFailure = errors.New("order and inventory state diverged")
)

type Repository interface {
	GetAll(ctx context.Context) ([]Order, error)
	GetByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	Add(ctx context.Context, o *Order) error
	Edit(ctx context.Context, o *Order) error
	Remove(ctx context.Context, id int64) error
}
