package http

import "time"

type createOrderRequest struct {
	CustomerID   string `json:"customer_id"`
	RestaurantID string `json:"restaurant_id"`
	City         string `json:"city"`
	Address      string `json:"address"`
}

type createCourierRequest struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// courierActionRequest identifies the acting courier. Identity arrives
// resolved from the outer gateway; the body is trusted as-is.
type courierActionRequest struct {
	CourierID string `json:"courier_id"`
}

type failDeliveryRequest struct {
	CourierID string `json:"courier_id"`
	Reason    string `json:"reason"`
}

type codeActionRequest struct {
	CourierID string `json:"courier_id"`
	Code      string `json:"code"`
}

type setAvailabilityRequest struct {
	Availability string `json:"availability"`
}

type reportLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type idResponse struct {
	ID string `json:"id"`
}

type codeResponse struct {
	PickupCode string `json:"pickup_code"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type eligibleOrderResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	PlacedAt     time.Time `json:"placed_at"`
}

type earningRowResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type earningsResponse struct {
	Rows  []earningRowResponse `json:"rows"`
	Total int64                `json:"total"`
}

type activeAssignmentResponse struct {
	AssignmentID string    `json:"assignment_id"`
	OrderID      string    `json:"order_id"`
	Status       string    `json:"status"`
	OrderStatus  string    `json:"order_status"`
	City         string    `json:"city"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}
