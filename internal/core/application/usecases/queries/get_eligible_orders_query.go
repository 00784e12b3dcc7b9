// Package queries contains read-only operations against the storage model.
// Query handlers bypass the aggregates and repositories and read projection
// rows straight from the database, per the CQRS split.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/cityname"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetEligibleOrdersQueryIsNotConstructed = errors.New(
		"GetEligibleOrdersQuery must be created via NewGetEligibleOrdersQuery constructor",
	)
	ErrCityIsRequired = errors.New("city is required")
)

// GetEligibleOrdersQuery lists the orders a courier could claim in a city
// right now. The listing is advisory: any order in it may be gone by the
// time a claim lands, and the claim protocol re-checks under a lock.
type GetEligibleOrdersQuery struct {
	city string

	guard guard.ConstructorGuard
}

// NewGetEligibleOrdersQuery creates a query for a city's claim pool.
// The city is normalized through the shared dictionary.
func NewGetEligibleOrdersQuery(city string) (GetEligibleOrdersQuery, error) {
	normalized := cityname.Normalize(city)
	if normalized == "" {
		return GetEligibleOrdersQuery{}, ErrCityIsRequired
	}

	return GetEligibleOrdersQuery{
		city:  normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEligibleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleOrdersQueryIsNotConstructed)
}

// City returns the normalized city bucket.
func (q GetEligibleOrdersQuery) City() string {
	return q.city
}

// GetEligibleOrdersQueryResponse is one claimable order in the listing.
type GetEligibleOrdersQueryResponse struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	City         string
	Address      string
	Status       string
	PlacedAt     time.Time
}
