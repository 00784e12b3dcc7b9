package courier

import (
	"dispatch/internal/core/domain/model/kernel"
)

// LocationPolicy decides which coordinates to accept when a courier reports
// a location. It receives the courier's service city, current availability,
// and the reported point, and returns the point to store.
//
// Modeling this as an explicit policy keeps the override visible at the call
// site instead of hiding it in a persistence hook.
type LocationPolicy func(city string, availability Availability, reported kernel.GeoPoint) kernel.GeoPoint

// cityCentroids holds the fixed centroid for every service city.
// Coordinates are approximate city centers; exact geolocation is not
// required for correctness, only coarse city-bucket routing.
var cityCentroids = map[string]struct{ lat, lon float64 }{
	"ahmedabad":   {23.0225, 72.5714},
	"gandhinagar": {23.2156, 72.6369},
	"mehsana":     {23.5880, 72.3693},
	"rajkot":      {22.3039, 70.8022},
	"surat":       {21.1702, 72.8311},
	"vadodara":    {22.3072, 73.1812},
}

// CityCentroid returns the fixed centroid of a normalized city name.
// The second return value is false for cities outside the service area.
func CityCentroid(city string) (kernel.GeoPoint, bool) {
	c, ok := cityCentroids[city]
	if !ok {
		return kernel.GeoPoint{}, false
	}

	point, err := kernel.NewGeoPoint(c.lat, c.lon)
	if err != nil {
		return kernel.GeoPoint{}, false
	}
	return point, true
}

// CentroidLock returns the anti-spoofing policy: whenever the courier is
// Online, the reported coordinates are replaced with the service-city
// centroid. Offline and Busy couriers keep their reported location
// (a Busy courier's live position feeds the order tracking stream).
// Unknown cities pass the reported point through unchanged.
func CentroidLock() LocationPolicy {
	return func(city string, availability Availability, reported kernel.GeoPoint) kernel.GeoPoint {
		if availability != Online {
			return reported
		}

		centroid, ok := CityCentroid(city)
		if !ok {
			return reported
		}
		return centroid
	}
}
