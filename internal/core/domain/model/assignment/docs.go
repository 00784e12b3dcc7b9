// Package assignment provides the Assignment aggregate: the binding between
// one order and one courier, with its own handoff state machine distinct from
// the order lifecycle.
//
// Keeping the two state machines separate allows assignment-level outcomes
// (a rejected assignment) independent of order-level outcomes, while the
// claim protocol keeps them consistent inside one transaction.
//
// Key business rules:
//   - Exactly one assignment may be in a non-terminal status per order
//   - A courier may have at most one non-terminal assignment
//   - Status follows Assigned -> Accepted -> PickedUp -> OnTheWay -> Delivered,
//     with Rejected reachable from any non-terminal status; no step is skipped
//   - Assignments are immutable once terminal
package assignment
