package clients

import (
	"context"
	"fmt"
	"net/http"
)

// Customer as returned by the customer service. The order workflow
// only cares that the record exists.
type Customer struct {
	ID              int64  `json:"id"`
	CompanyName     string `json:"companyName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BillingAddress  string `json:"billingAddress"`
	ShippingAddress string `json:"shippingAddress"`
}

type CustomerClient struct {
	base string
	hc   *http.Client
}

func NewCustomerClient(base string) *CustomerClient {
	return &CustomerClient{base: base, hc: newHTTPClient()}
}

func (c *CustomerClient) Customer(ctx context.Context, id int64) (*Customer, error) {
	var cust Customer
	if err := getJSON(ctx, c.hc, fmt.Sprintf("%s/%d", c.base, id), &cust); err != nil {
		return nil, err
	}
	return &cust, nil
}
