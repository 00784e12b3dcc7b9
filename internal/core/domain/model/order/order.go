package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder constructors.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")
	// ErrCityIsRequired is returned when attempting to create an order without a service city.
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
	// ErrAddressIsRequired is returned when attempting to create an order without a delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
)

// Order represents one delivery job. It is the aggregate root that manages
// the order lifecycle from checkout through courier handoff to completion.
//
// Order follows these invariants:
//   - Must have valid identifiers for itself, the customer, and the restaurant
//   - Must carry a normalized service city and a non-empty delivery address
//   - At most one courier is ever bound to the order; once bound it never changes
//   - Status transitions follow the workflow defined on Status; each transition
//     stamps its timestamp exactly once
//   - Delivery flips the payment status to Paid in the same transition
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through validated transition methods. Orders are never deleted - they only
// reach a terminal status.
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	restaurantID  kernel.UUID
	courierID     *kernel.UUID
	city          string
	address       string
	status        Status
	paymentStatus PaymentStatus
	placedAt      time.Time
	assignedAt    *time.Time
	pickedUpAt    *time.Time
	deliveredAt   *time.Time
	guard         guard.ConstructorGuard
}

// NewOrder creates a new Order in Confirmed status with payment pending.
// This is the entry point used when checkout finalizes an order.
//
// The city must already be normalized by the caller; the aggregate treats it
// as an opaque canonical bucket and never re-normalizes.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	city string,
	address string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Confirmed,
		paymentStatus: PaymentPending,
		placedAt:      placedAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setCity(city),
		o.setAddress(address),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts any valid lifecycle state and verifies the
// status/courier consistency rule on the way in.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	courierID *kernel.UUID,
	city string,
	address string,
	status Status,
	paymentStatus PaymentStatus,
	placedAt time.Time,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
) (*Order, error) {
	o := &Order{
		placedAt:    placedAt,
		assignedAt:  assignedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setCity(city),
		o.setAddress(address),
		status.Validate(),
		paymentStatus.Validate(),
		status.ValidateCanHaveCourier(courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.courierID = courierID
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the preparing restaurant's identifier.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Courier returns the bound courier's ID, or nil while unclaimed.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// City returns the normalized service city.
func (o *Order) City() string {
	return o.city
}

// Address returns the delivery street address.
func (o *Order) Address() string {
	return o.address
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// PlacedAt returns the checkout timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// AssignedAt returns the claim timestamp, or nil while unclaimed.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// PickedUpAt returns the pickup handoff timestamp, or nil before pickup.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns the delivery handoff timestamp, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CanBeClaimed reports whether a courier claim may still succeed: the order
// must be in a claim-eligible status and have no courier bound.
//
// The claim protocol re-evaluates this predicate under a row lock; a cached
// positive answer from an eligible-orders listing proves nothing.
func (o *Order) CanBeClaimed() bool {
	return o.status.IsEligibleForClaim() && o.courierID == nil
}

// StartPreparing records that the restaurant accepted the order.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.Prepare()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady records that the restaurant finished preparation.
// A ready order enters the city's eligible pool until a claim binds it.
// When a claim already landed while the kitchen was cooking, the order skips
// the pool and goes straight to Assigned.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MakeReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.courierID != nil {
		o.status = Assigned
	}
	return nil
}

// Assign binds the order to a courier. A Ready order advances to Assigned
// immediately; an order still in the kitchen keeps its status and reaches
// Assigned through MarkReady.
//
// Business rules:
//   - The courier ID must be valid
//   - The order must still satisfy CanBeClaimed; a second claim fails here
//   - The assignment timestamp is stamped exactly once
func (o *Order) Assign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.courierID != nil {
		return transitionError(o.status, Assigned)
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.assignedAt = &at
	return nil
}

// MarkPickedUp records the verified pickup handoff and stamps picked_up_at.
func (o *Order) MarkPickedUp(at time.Time) error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &at
	return nil
}

// StartTransit records that the courier left the restaurant.
func (o *Order) StartTransit() error {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered records the verified delivery handoff. The order reaches its
// terminal Delivered status, the payment flips to Paid, and delivered_at is
// stamped - all in one call so the engine can persist them atomically.
func (o *Order) MarkDelivered(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.paymentStatus = PaymentPaid
	o.deliveredAt = &at
	return nil
}

// Requeue returns the order to the claimable pool after its claim is
// unwound. The courier binding and the in-flight timestamps are cleared so
// the next claim starts from a clean slate; an order whose kitchen never
// finished keeps its kitchen status.
func (o *Order) Requeue() error {
	if o.courierID == nil {
		return transitionError(o.status, Ready)
	}

	newStatus, err := o.status.Requeue()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = nil
	o.assignedAt = nil
	o.pickedUpAt = nil
	return nil
}

// Cancel moves the order to its terminal Cancelled status.
// Allowed from any non-terminal status; the bound courier, if any, stays on
// record for auditing.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurant id", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCity(city string) error {
	if city == "" {
		return ErrCityIsRequired
	}
	o.city = city
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}
