package geo

import (
	"fmt"
	"math"

	"github.com/presensia/presensia/internal/domain"
)

// earthRadiusMeters is the spherical-Earth approximation used by the
// haversine formula.
const earthRadiusMeters = 6371000.0

// Coordinate is a point in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ProximityResult reports whether a sampled point falls inside a
// geofence, with the rounded distance for display.
type ProximityResult struct {
	Accepted       bool   `json:"accepted"`
	DistanceMeters int    `json:"distance_meters"`
	Message        string `json:"message"`
}

// Distance returns the great-circle distance between two coordinates in
// meters. Always non-negative; zero for identical points.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// ValidateProximity accepts the sample iff its distance to the fence
// center is at most the fence radius. The boundary is inclusive.
func ValidateProximity(sample Coordinate, fence domain.Geofence) ProximityResult {
	center := Coordinate{Latitude: fence.Latitude, Longitude: fence.Longitude}
	distance := Distance(sample, center)
	rounded := int(math.Round(distance))

	if distance <= fence.RadiusMeters {
		return ProximityResult{
			Accepted:       true,
			DistanceMeters: rounded,
			Message:        fmt.Sprintf("You are %dm from the classroom. Attendance allowed.", rounded),
		}
	}

	return ProximityResult{
		Accepted:       false,
		DistanceMeters: rounded,
		Message: fmt.Sprintf("You are %dm from the classroom. You must be within %.0fm to mark attendance.",
			rounded, fence.RadiusMeters),
	}
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
