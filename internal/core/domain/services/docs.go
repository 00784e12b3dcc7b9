// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch system. It implements complex
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - HandoffVerifier: a domain service that issues and checks one-time
//     handoff codes for the pickup and delivery legs of an order
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
