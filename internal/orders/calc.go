package orders

import "time"

// Fixed-rule calculators used at order creation. They are named seams:
// a later version is expected to vary both by order attributes.

const (
	flatShippingCharge = 6.0
	deliveryOffsetDays = 5
)

func ShippingCharge() float64 { return flatShippingCharge }

// EstimatedDeliveryDate returns midnight of now's day plus the fixed
// delivery offset.
func EstimatedDeliveryDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, deliveryOffsetDays)
}
