package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-order-services.git/internal/clients"
	kafkax "github.com/ariefcatur/go-order-services.git/internal/kafka"
)

// ProductService is the slice of the remote product API the workflow
// needs: one lookup and one full-record update.
type ProductService interface {
	Product(ctx context.Context, id int64) (*clients.Product, error)
	UpdateProduct(ctx context.Context, p *clients.Product) error
}

// CustomerService is the slice of the remote customer API the workflow
// needs: existence of a record.
type CustomerService interface {
	Customer(ctx context.Context, id int64) (*clients.Customer, error)
}

// Workflow runs order creation and fulfillment against the local
// repository and the two remote services. Safe for concurrent use; it
// holds no per-request state.
type Workflow struct {
	Repo      Repository
	Products  ProductService
	Customers CustomerService
	Producer  Publisher    // optional
	Log       *slog.Logger // optional
	Service   string
	Now       func() time.Time // test seam, defaults to time.Now
}

func (w *Workflow) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func (w *Workflow) logger() *slog.Logger {
	if w.Log != nil {
		return w.Log
	}
	return slog.Default()
}

// Create admits a candidate order after checking the remote customer,
// the customer's credit standing and the remote stock level, in that
// order. Shipping charge and estimated delivery date are always set by
// the workflow, never by the caller. No remote state changes here:
// stock is only decremented at fulfillment.
func (w *Workflow) Create(ctx context.Context, in Order) (*Order, error) {
	if in.CustomerID <= 0 || in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, ErrInvalidInput
	}

	// The two lookups are independent; run them concurrently and
	// classify afterwards so a slow product fetch cannot mask a
	// missing customer.
	var (
		prod    *clients.Product
		prodErr error
		cust    *clients.Customer
		custErr error
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		prod, prodErr = w.Products.Product(ctx, in.ProductID)
		return nil
	})
	g.Go(func() error {
		cust, custErr = w.Customers.Customer(ctx, in.CustomerID)
		return nil
	})
	_ = g.Wait()

	switch {
	case errors.Is(custErr, clients.ErrNotFound):
		return nil, ErrCustomerNotFound
	case custErr != nil:
		return nil, fmt.Errorf("customer lookup: %w", custErr)
	case errors.Is(prodErr, clients.ErrNotFound):
		return nil, ErrProductNotFound
	case prodErr != nil:
		return nil, fmt.Errorf("product lookup: %w", prodErr)
	}
	_ = cust // existence is the only fact this workflow inspects

	ok, err := w.hasCreditStanding(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("credit standing: %w", err)
	}
	if !ok {
		w.logger().Info("order declined, no credit standing", "customer_id", in.CustomerID)
		return nil, ErrNoCreditStanding
	}

	if in.Quantity > prod.ItemsInStock {
		w.logger().Info("order declined, insufficient stock",
			"product_id", in.ProductID, "requested", in.Quantity, "in_stock", prod.ItemsInStock)
		return nil, ErrInsufficientStock
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := in
	o.Status = StatusRequested
	charge := ShippingCharge()
	o.ShippingCharge = &charge
	eta := EstimatedDeliveryDate(w.now())
	o.EstimatedDeliveryDate = &eta
	if o.Date == nil {
		t := w.now()
		o.Date = &t
	}

	if err := w.Repo.Add(ctx, &o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	w.publish(EventOrderRequested, o.ID, OrderRequestedPayload{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
	})
	w.logger().Info("order created", "order_id", o.ID, "customer_id", o.CustomerID)
	return &o, nil
}

// hasCreditStanding reports whether the customer may place a new
// order: false as soon as any existing order sits in status
// "requested" (exact match on the stored label).
func (w *Workflow) hasCreditStanding(ctx context.Context, customerID int64) (bool, error) {
	existing, err := w.Repo.GetByCustomer(ctx, customerID)
	if err != nil {
		return false, err
	}
	for _, o := range existing {
		if o.Status == StatusRequested {
			return false, nil
		}
	}
	return true, nil
}

// Fulfill overwrites the stored order's status. A transition to
// "shipped" additionally decrements the remote product's stock by the
// order's quantity, pushed back over the product API. When the stored
// quantity exceeds the current stock the decrement is skipped but the
// status still becomes "shipped"; the divergence is surfaced as a
// consistency warning instead of being corrected, matching the
// documented behavior of this workflow.
func (w *Workflow) Fulfill(ctx context.Context, id int64, status Status) error {
	o, err := w.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	o.Status = status

	if !status.Is(StatusShipped) {
		return w.Repo.Edit(ctx, o)
	}

	attemptID := uuid.NewString()
	log := w.logger().With("order_id", o.ID, "attempt_id", attemptID)

	prod, err := w.Products.Product(ctx, o.ProductID)
	if errors.Is(err, clients.ErrNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("product lookup: %w", err)
	}

	// Phase one: remote stock decrement.
	var remoteErr error
	stockAdjusted := false
	if o.Quantity <= prod.ItemsInStock {
		prod.ItemsInStock -= o.Quantity
		if remoteErr = w.Products.UpdateProduct(ctx, prod); remoteErr != nil {
			log.Error("stock decrement failed", "product_id", prod.ID, "err", remoteErr)
		} else {
			stockAdjusted = true
		}
	} else {
		// Known gap: the order ships anyway, inventory stays as-is.
		log.Warn("shipping without stock adjustment",
			"product_id", prod.ID, "requested", o.Quantity, "in_stock", prod.ItemsInStock)
		w.warn(o, attemptID, "quantity exceeds current stock, decrement skipped")
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// Phase two: local order edit.
	if editErr := w.Repo.Edit(ctx, o); editErr != nil {
		if stockAdjusted {
			log.Error("order edit failed after stock decrement", "err", editErr)
			w.warn(o, attemptID, "remote stock decremented but local edit failed")
			return fmt.Errorf("%w: edit after remote decrement: %v", ErrPartialFailure, editErr)
		}
		return fmt.Errorf("persist order: %w", editErr)
	}

	if remoteErr != nil {
		w.warn(o, attemptID, "local order shipped but remote stock update failed")
		return fmt.Errorf("%w: remote stock update: %v", ErrPartialFailure, remoteErr)
	}

	w.publish(EventOrderShipped, o.ID, OrderShippedPayload{
		OrderID:       o.ID,
		ProductID:     o.ProductID,
		Quantity:      o.Quantity,
		StockAdjusted: stockAdjusted,
	})
	log.Info("order shipped", "stock_adjusted", stockAdjusted)
	return nil
}

func (w *Workflow) warn(o *Order, attemptID, reason string) {
	w.publish(EventConsistencyWarning, o.ID, ConsistencyWarningPayload{
		OrderID:   o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		AttemptID: attemptID,
		Reason:    reason,
	})
}

func (w *Workflow) publish(eventType string, orderID int64, payload any) {
	if w.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      w.Service,
		CorrelationID: fmt.Sprintf("%d", orderID),
		Payload:       kafkax.MustMarshal(payload),
	}
	w.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev))
}
