// Package order provides domain entities and business logic for order management
// in the dispatch system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, parties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - PaymentStatus: The payment outcome tracked alongside delivery progress
//
// Key business rules:
//   - Orders must reference a customer, a restaurant, and a normalized service city
//   - Order status follows the workflow:
//     Confirmed -> Preparing -> Ready -> Assigned -> PickedUp -> OnTheWay -> Delivered,
//     with Cancelled reachable from any non-terminal status
//   - An order is claimable only while Confirmed, Preparing, or Ready with no courier
//   - At most one courier may ever be bound to an order; the claim protocol keeps
//     Order.Status and the assignment status in lock-step
//   - Delivery marks the order paid in the same transition
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
