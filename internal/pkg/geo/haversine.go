package geo

import "math"

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between two coordinates in meters.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := math.Pi / 180.0
	dLat := (lat2 - lat1) * toRad
	dLon := (lon2 - lon1) * toRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1*toRad)*math.Cos(lat2*toRad)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Within reports whether the point is no further than radius meters from the center.
// A missing coordinate on either side never matches.
func Within(lat, lon, centerLat, centerLon *float64, radius float64) bool {
	if lat == nil || lon == nil || centerLat == nil || centerLon == nil {
		return false
	}
	return Distance(*lat, *lon, *centerLat, *centerLon) <= radius
}
