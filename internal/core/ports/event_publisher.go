package ports

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
)

// Event kinds emitted by the command handlers.
const (
	EventOrderConfirmed   = "order_placed"
	EventOrderPreparing   = "order_preparing"
	EventOrderReady       = "new_order_available"
	EventOrderClaimed     = "order_claimed"
	EventOrderPickedUp    = "order_picked_up"
	EventOrderInTransit   = "order_on_the_way"
	EventOrderDelivered   = "order_delivered"
	EventOrderCancelled   = "order_cancelled"
	EventOrderFailed      = "order_delivery_failed"
	EventCourierCredited  = "courier_credited"
	EventCourierAvailable = "courier_status_changed"
)

// Event is a notification published to interested subscribers after a
// command's transaction commits. Delivery is best effort and at most once;
// nothing is persisted or retried.
type Event struct {
	Topic   string         `json:"topic"`
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// EventPublisher is the outbound notification contract. Publish must not
// block on slow consumers; implementations drop rather than queue
// unboundedly.
type EventPublisher interface {
	Publish(event Event)
}

// UserTopic addresses a single customer's or courier's stream.
func UserTopic(id kernel.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// CityTopic addresses every subscriber watching a city, such as online
// couriers polling for claimable orders.
func CityTopic(city string) string {
	return fmt.Sprintf("city:%s", city)
}

// OrderTopic addresses subscribers tracking one order's progress.
func OrderTopic(id kernel.UUID) string {
	return fmt.Sprintf("order:%s", id.String())
}
