package earning

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrEarningIsNotConstructed is returned when using an improperly initialized Earning.
var ErrEarningIsNotConstructed = errors.New(
	"Earning must be created via NewEarning or RestoreEarning constructors")

// Category classifies a ledger row.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	// CategoryDelivery is the fixed per-delivery payout, appended in the
	// same transaction that marks the order delivered.
	CategoryDelivery

	// CategoryIncentive is a bonus granted outside the delivery flow.
	CategoryIncentive

	// CategoryAdjustment is an additive correction. The ledger never
	// rewrites history; mistakes are compensated with new rows.
	CategoryAdjustment
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:    "Unknown",
		CategoryDelivery:   "Delivery",
		CategoryIncentive:  "Incentive",
		CategoryAdjustment: "Adjustment",
	}
}

// String returns the human-readable name of the category.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks if the Category value is valid.
func (c Category) Validate() error {
	if c < CategoryDelivery || c > CategoryAdjustment {
		return errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%d is not a valid earning category", c))
	}
	return nil
}

// Earning is one immutable ledger row crediting a courier for an order.
type Earning struct {
	id        kernel.UUID
	courierID kernel.UUID
	orderID   kernel.UUID
	amount    kernel.Money
	category  Category
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewEarning creates a ledger row. All fields are fixed at construction;
// the row has no mutating methods.
func NewEarning(
	id, courierID, orderID kernel.UUID,
	amount kernel.Money,
	category Category,
	createdAt time.Time,
) (*Earning, error) {
	e := &Earning{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setCourierID(courierID),
		e.setOrderID(orderID),
		amount.Validate(),
		category.Validate(),
	); err != nil {
		return nil, err
	}

	e.amount = amount
	e.category = category
	return e, nil
}

// RestoreEarning reconstructs a ledger row from persistent storage.
// Identical to NewEarning; the alias keeps repository code explicit about
// intent, matching the other aggregates.
func RestoreEarning(
	id, courierID, orderID kernel.UUID,
	amount kernel.Money,
	category Category,
	createdAt time.Time,
) (*Earning, error) {
	return NewEarning(id, courierID, orderID, amount, category, createdAt)
}

// Validate ensures the Earning instance was properly constructed.
func (e *Earning) Validate() error {
	if e == nil {
		return ErrEarningIsNotConstructed
	}
	return e.guard.Validate(ErrEarningIsNotConstructed)
}

// ID returns the row's unique identifier.
func (e *Earning) ID() kernel.UUID {
	return e.id
}

// CourierID returns the credited courier's identifier.
func (e *Earning) CourierID() kernel.UUID {
	return e.courierID
}

// OrderID returns the identifier of the order the credit relates to.
func (e *Earning) OrderID() kernel.UUID {
	return e.orderID
}

// Amount returns the credited amount.
func (e *Earning) Amount() kernel.Money {
	return e.amount
}

// Category returns the row's classification.
func (e *Earning) Category() Category {
	return e.category
}

// CreatedAt returns the ledger timestamp.
func (e *Earning) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Earning) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Earning) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.courierID = id
	return nil
}

func (e *Earning) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.orderID = id
	return nil
}
