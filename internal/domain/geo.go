package domain

import "math"

// Immutable geographic point (latitude, longitude) with an optional
// human-readable address.
type GeoLocation struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// Return coordinates as [lon, lat] for external API compatibility.
func (g GeoLocation) CoordsToList() []float64 { return []float64{g.Longitude, g.Latitude} }

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in meters
// using the Haversine formula. The result is symmetric in its arguments.
func Distance(a, b GeoLocation) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
