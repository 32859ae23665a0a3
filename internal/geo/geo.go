// Package geo computes great-circle distance and travel-time ETA between
// two WGS-84 coordinates.
package geo

import (
	"math"

	"github.com/kaelan-ross/transferdecision/internal/rules"
	"github.com/kaelan-ross/transferdecision/pkg/model"
)

// EarthRadiusKM is the spherical Earth radius used by the Haversine formula.
const EarthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance between a and b in kilometers.
func DistanceKM(a, b model.Location) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKM * c
}

// ETAMinutes returns travel time in minutes between a and b at the speed
// rules.Table resolves for mode.
func ETAMinutes(a, b model.Location, mode model.TransportMode, table rules.Table) float64 {
	distance := DistanceKM(a, b)
	speed := table.TransportSpeedKMH(mode)
	if speed <= 0 {
		return 0
	}
	return (distance / speed) * 60.0
}

// RoundMinutes rounds an ETA to one decimal place for presentation.
// Internal values stay full-precision doubles until displayed.
func RoundMinutes(etaMinutes float64) float64 {
	return math.Round(etaMinutes*10) / 10
}
