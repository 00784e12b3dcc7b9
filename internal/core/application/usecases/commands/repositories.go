// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest composite it needs; the composition
// root adapts the concrete unit of work to these shapes.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// AssignmentRepoFactory provides access to the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// CodeRepoFactory provides access to the handoff code repository within a transaction.
	CodeRepoFactory interface {
		CodeRepository() ports.CodeRepository
	}

	// EarningRepoFactory provides access to the earnings ledger within a transaction.
	EarningRepoFactory interface {
		EarningRepository() ports.EarningRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// ReadyUoW manages transactions that ready an order for claiming and
	// mint its pickup code.
	ReadyUoW interface {
		TxManager
		OrderRepoFactory
		CodeRepoFactory
	}

	// ReadyUoWFactory creates new ready unit of work instances.
	ReadyUoWFactory interface {
		Create() ReadyUoW
	}

	// ClaimUoW manages transactions spanning order, courier and assignment.
	// Used by the claim and fail-delivery flows.
	ClaimUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		AssignmentRepoFactory
	}

	// ClaimUoWFactory creates new claim unit of work instances.
	ClaimUoWFactory interface {
		Create() ClaimUoW
	}

	// HandoffUoW manages transactions for the pickup and transit legs,
	// where a handoff code is verified or minted alongside the order and
	// assignment updates.
	HandoffUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		CodeRepoFactory
	}

	// HandoffUoWFactory creates new handoff unit of work instances.
	HandoffUoWFactory interface {
		Create() HandoffUoW
	}

	// DeliveryUoW manages the widest transaction in the system: completing
	// a delivery touches the order, the courier, the assignment, the
	// delivery code and the earnings ledger atomically.
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		AssignmentRepoFactory
		CodeRepoFactory
		EarningRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// CodeUoW manages transactions that only touch handoff codes.
	CodeUoW interface {
		TxManager
		CodeRepoFactory
	}

	// CodeUoWFactory creates new code unit of work instances.
	CodeUoWFactory interface {
		Create() CodeUoW
	}
)
