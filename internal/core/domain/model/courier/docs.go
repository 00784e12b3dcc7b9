// Package courier provides domain entities and business logic for courier management
// in the dispatch system. It implements the Courier aggregate root with availability
// tracking, wallet balance, and the city location-lock policy.
//
// The package includes:
//   - Courier: The aggregate root that manages courier identity, availability, and wallet
//   - Availability: A state machine over Offline, Online, and Busy
//   - LocationPolicy: The anti-spoofing policy that snaps online couriers to their
//     service-city centroid
//
// Key business rules:
//   - Couriers must have a valid unique identifier, name, and normalized service city
//   - A courier with an active assignment is Busy; a Busy courier cannot claim again
//   - A Busy courier may not go offline - the active assignment must resolve first
//   - Delivery earnings are credited to the wallet, never debited by this core
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
