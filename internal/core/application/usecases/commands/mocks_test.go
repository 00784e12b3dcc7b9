package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/handoff"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByOrder(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByOrderForUpdate(
	ctx context.Context, orderID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActiveByCourier(
	ctx context.Context, courierID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

type MockCodeRepository struct{ mock.Mock }

func (m *MockCodeRepository) Add(ctx context.Context, c *handoff.OneTimeCode) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCodeRepository) Update(ctx context.Context, c *handoff.OneTimeCode) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCodeRepository) GetActiveByOrderAndPhase(
	ctx context.Context, orderID kernel.UUID, phase handoff.Phase,
) (*handoff.OneTimeCode, error) {
	args := m.Called(ctx, orderID, phase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handoff.OneTimeCode), args.Error(1)
}

func (m *MockCodeRepository) PurgeDead(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockEarningRepository struct{ mock.Mock }

func (m *MockEarningRepository) Add(ctx context.Context, row *earning.Earning) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

// MockUoW satisfies every unit of work composite the handlers declare.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) CodeRepository() ports.CodeRepository {
	args := m.Called()
	return args.Get(0).(ports.CodeRepository)
}

func (m *MockUoW) EarningRepository() ports.EarningRepository {
	args := m.Called()
	return args.Get(0).(ports.EarningRepository)
}

type FuncClaimUoWFactory func() commands.ClaimUoW

func (f FuncClaimUoWFactory) Create() commands.ClaimUoW { return f() }

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW { return f() }

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW { return f() }

type FuncReadyUoWFactory func() commands.ReadyUoW

func (f FuncReadyUoWFactory) Create() commands.ReadyUoW { return f() }

type FuncHandoffUoWFactory func() commands.HandoffUoW

func (f FuncHandoffUoWFactory) Create() commands.HandoffUoW { return f() }

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW { return f() }

type FuncCodeUoWFactory func() commands.CodeUoW

func (f FuncCodeUoWFactory) Create() commands.CodeUoW { return f() }

// RecordingPublisher captures events for assertions.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *RecordingPublisher) Publish(event ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *RecordingPublisher) Events() []ports.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.Event(nil), p.events...)
}

func (p *RecordingPublisher) Kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	kinds := make([]string, 0, len(p.events))
	for _, e := range p.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
