package recommendation

import (
	"math"

	"marketReco/domain"
)

const earthRadiusKm = 6371.0

// DistanceKm is the haversine great-circle distance between two points.
func DistanceKm(a, b domain.GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// distanceTo returns the distance from the user to the item, if both
// positions are known.
func distanceTo(item domain.Candidate, loc *domain.UserLocation) (float64, bool) {
	if loc == nil || item.Location == nil {
		return 0, false
	}
	return DistanceKm(*loc, *item.Location), true
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
