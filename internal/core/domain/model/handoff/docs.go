// Package handoff provides the one-time verification codes that guard the
// pickup and delivery handoffs. A courier alone cannot forge a handoff: the
// pickup code is revealed to the restaurant and the delivery code to the
// customer, and the engine only advances when the submitted code verifies.
//
// Key business rules:
//   - A code is scoped to one (order, phase) pair and is single-use
//   - Verification fails closed on expiry or attempt exhaustion, consuming
//     the record so it can never resurrect
//   - A wrong guess increments the attempt counter and reveals nothing about
//     why verification failed
package handoff
