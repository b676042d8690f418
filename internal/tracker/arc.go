package tracker

import (
	"math"

	"github.com/flightboard/flightboard/internal/model"
)

// DefaultArcSegments is the number of interpolated waypoints when no
// explicit count is configured.
const DefaultArcSegments = 64

// GreatCircleArc returns segments+1 waypoints along the great-circle
// path from a to b, endpoints included. Interpolation is spherical
// (slerp), so the arc follows the shortest path over the globe rather
// than a straight line in lat/lon space.
func GreatCircleArc(a, b model.Coordinate, segments int) []model.Coordinate {
	if segments < 1 {
		segments = 1
	}

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	// Central angle between the endpoints (haversine).
	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	delta := 2 * math.Asin(math.Min(1, math.Sqrt(h)))

	points := make([]model.Coordinate, 0, segments+1)

	// Coincident or antipodal endpoints have no unique great circle;
	// fall back to repeating the start point.
	if delta == 0 || math.Sin(delta) == 0 {
		for i := 0; i <= segments; i++ {
			points = append(points, a)
		}
		return points
	}

	sinDelta := math.Sin(delta)
	for i := 0; i <= segments; i++ {
		f := float64(i) / float64(segments)

		fa := math.Sin((1-f)*delta) / sinDelta
		fb := math.Sin(f*delta) / sinDelta

		x := fa*math.Cos(lat1)*math.Cos(lon1) + fb*math.Cos(lat2)*math.Cos(lon2)
		y := fa*math.Cos(lat1)*math.Sin(lon1) + fb*math.Cos(lat2)*math.Sin(lon2)
		z := fa*math.Sin(lat1) + fb*math.Sin(lat2)

		points = append(points, model.Coordinate{
			Latitude:  math.Atan2(z, math.Sqrt(x*x+y*y)) * 180 / math.Pi,
			Longitude: math.Atan2(y, x) * 180 / math.Pi,
		})
	}

	return points
}
