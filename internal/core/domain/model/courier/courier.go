package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCityIsRequired is returned when attempting to create a courier without a service city.
	ErrCityIsRequired = errs.NewValueIsRequiredError("city")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructors")
)

// Courier represents a delivery agent in the system.
// It is an aggregate root that manages courier identity, duty state, wallet
// balance, and reported location.
//
// Key responsibilities:
//   - Managing courier identity (ID, name, service city)
//   - Enforcing the availability state machine (Offline/Online/Busy)
//   - Guaranteeing the single-active-assignment invariant together with the
//     assignment engine: a Busy courier cannot claim, an Online courier can
//   - Accumulating delivery earnings in the wallet
//   - Holding the last accepted location, subject to the location-lock policy
//
// Business rules:
//   - A courier with an active (non-terminal) assignment must be Busy
//   - A Busy courier may not go Offline; the assignment must resolve first
//   - Wallet credits are additive; this core never debits
type Courier struct {
	id           kernel.UUID
	name         string
	city         string
	availability Availability
	wallet       kernel.Money
	location     kernel.GeoPoint
	guard        guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// The courier starts Offline with an empty wallet at the given location
// (typically the service-city centroid).
//
// The city must already be normalized by the caller.
func NewCourier(id kernel.UUID, name, city string, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		availability: Offline,
		wallet:       kernel.ZeroMoney(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setCity(city),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving availability, wallet balance, and location.
func RestoreCourier(
	id kernel.UUID,
	name, city string,
	availability Availability,
	wallet kernel.Money,
	location kernel.GeoPoint,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setCity(city),
		c.setLocation(location),
		availability.Validate(),
		wallet.Validate(),
	); err != nil {
		return nil, err
	}

	c.availability = availability
	c.wallet = wallet
	return c, nil
}

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// City returns the courier's normalized service city.
func (c *Courier) City() string {
	return c.city
}

// Availability returns the courier's current duty state.
func (c *Courier) Availability() Availability {
	return c.availability
}

// Wallet returns the courier's accumulated earnings balance.
func (c *Courier) Wallet() kernel.Money {
	return c.wallet
}

// Location returns the courier's current accepted location.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

// CanClaim reports whether the courier may claim an order right now.
// Only Online couriers claim; Busy enforces the single-active-assignment
// invariant and Offline couriers are invisible to dispatch.
func (c *Courier) CanClaim() bool {
	return c.availability == Online
}

// GoOnline puts the courier on duty. The caller applies the location-lock
// policy and reports the resulting location separately.
//
// Allowed only from Offline: an Online courier going online is a client
// error and a Busy courier must resolve its assignment first.
func (c *Courier) GoOnline() error {
	if c.availability != Offline {
		return availabilityTransitionError(c.availability, Online)
	}

	c.availability = Online
	return nil
}

// GoOffline takes the courier off duty.
//
// A Busy courier may not go offline; ErrActiveAssignment is returned and the
// caller must resolve the assignment through delivery or failure first.
func (c *Courier) GoOffline() error {
	if c.availability == Busy {
		return errs.ErrActiveAssignment
	}
	if c.availability != Online {
		return availabilityTransitionError(c.availability, Offline)
	}

	c.availability = Offline
	return nil
}

// MarkBusy binds the courier to an active assignment.
// Only an Online courier can become Busy; the claim protocol checks CanClaim
// under a row lock before calling this.
func (c *Courier) MarkBusy() error {
	if c.availability != Online {
		return availabilityTransitionError(c.availability, Busy)
	}

	c.availability = Busy
	return nil
}

// Release returns the courier to Online after its assignment reached a
// terminal status.
func (c *Courier) Release() error {
	if c.availability != Busy {
		return availabilityTransitionError(c.availability, Online)
	}

	c.availability = Online
	return nil
}

// Credit adds a delivery earning to the courier's wallet.
func (c *Courier) Credit(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	c.wallet = c.wallet.Add(amount)
	return nil
}

// ReportLocation accepts a location update after passing it through the
// given policy. The policy may override the reported coordinates; with the
// city centroid lock, online couriers are snapped to their service city.
func (c *Courier) ReportLocation(reported kernel.GeoPoint, policy LocationPolicy) error {
	if err := reported.Validate(); err != nil {
		return err
	}

	accepted := reported
	if policy != nil {
		accepted = policy(c.city, c.availability, reported)
	}

	c.location = accepted
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setCity(city string) error {
	if city == "" {
		return ErrCityIsRequired
	}
	c.city = city
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
