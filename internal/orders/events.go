package orders

import (
	"encoding/json"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const TopicOrderEvents = "order.events"

const (
	EventOrderRequested     = "OrderRequested"
	EventOrderShipped       = "OrderShipped"
	EventConsistencyWarning = "ConsistencyWarning"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderRequestedPayload struct {
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

type OrderShippedPayload struct {
	OrderID       int64 `json:"order_id"`
	ProductID     int64 `json:"product_id"`
	Quantity      int   `json:"quantity"`
	StockAdjusted bool  `json:"stock_adjusted"`
}

// ConsistencyWarningPayload is published whenever fulfillment leaves
// the local order and the remote inventory in disagreement, so
// operators can reconcile by hand.
type ConsistencyWarningPayload struct {
	OrderID   int64  `json:"order_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	AttemptID string `json:"attempt_id"`
	Reason    string `json:"reason"`
}

// Publisher is satisfied by the kafka producer; tests plug a capture
// fake. A nil Publisher disables event output.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Partition key = order id so all events for one order keep their order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
