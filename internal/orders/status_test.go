package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusRequested, ParseStatus("requested"))
	assert.Equal(t, StatusShipped, ParseStatus("Shipped"))
	assert.Equal(t, StatusShipped, ParseStatus("SHIPPED"))
	assert.Equal(t, StatusShipped, ParseStatus("sHiPpEd"))
	// Unknown labels pass through untouched.
	assert.Equal(t, Status("cancelled"), ParseStatus("cancelled"))
	assert.Equal(t, Status("Backordered"), ParseStatus("Backordered"))
}

func TestStatusIs(t *testing.T) {
	assert.True(t, Status("Shipped").Is(StatusShipped))
	assert.True(t, Status("SHIPPED").Is(StatusShipped))
	assert.False(t, Status("requested").Is(StatusShipped))
}

func TestShippingCharge(t *testing.T) {
	assert.Equal(t, 6.0, ShippingCharge())
}

func TestEstimatedDeliveryDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 42, 7, 0, time.UTC)
	got := EstimatedDeliveryDate(now)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}
