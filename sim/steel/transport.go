package steel

import "time"

// TransportMode describes one way of moving material: cost, speed, and
// emission intensity per tonne-km.
type TransportMode struct {
	Name                  string
	CostPerTonneKm        float64 // USD
	CapacityTonnesPerTrip float64 // 0 = unconstrained
	SpeedKmPerHour        float64 // 0 = lead time unknown
	CO2eGramsPerTonneKm   float64
}

// DefaultTransportModes returns the built-in mode table.
func DefaultTransportModes() map[string]TransportMode {
	return map[string]TransportMode{
		"truck":        {Name: "truck", CostPerTonneKm: 0.15, CapacityTonnesPerTrip: 25, SpeedKmPerHour: 60, CO2eGramsPerTonneKm: 150},
		"rail":         {Name: "rail", CostPerTonneKm: 0.05, CapacityTonnesPerTrip: 2000, SpeedKmPerHour: 40, CO2eGramsPerTonneKm: 30},
		"ship-coastal": {Name: "ship-coastal", CostPerTonneKm: 0.02, CapacityTonnesPerTrip: 10000, SpeedKmPerHour: 20, CO2eGramsPerTonneKm: 15},
		"ship-ocean":   {Name: "ship-ocean", CostPerTonneKm: 0.01, CapacityTonnesPerTrip: 50000, SpeedKmPerHour: 25, CO2eGramsPerTonneKm: 10},
		"pipeline":     {Name: "pipeline", CostPerTonneKm: 0.03, CO2eGramsPerTonneKm: 5},
	}
}

// TripCost returns the cost of moving quantityTonnes over distanceKm.
func (m TransportMode) TripCost(distanceKm, quantityTonnes float64) float64 {
	return m.CostPerTonneKm * distanceKm * quantityTonnes
}

// LeadTime returns the travel time for distanceKm. False when the mode has
// no speed defined.
func (m TransportMode) LeadTime(distanceKm float64) (time.Duration, bool) {
	if m.SpeedKmPerHour <= 0 {
		return 0, false
	}
	hours := distanceKm / m.SpeedKmPerHour
	return time.Duration(hours * float64(time.Hour)), true
}

// TripEmissionsTonnesCO2e returns trip emissions in tonnes CO2e.
func (m TransportMode) TripEmissionsTonnesCO2e(distanceKm, quantityTonnes float64) float64 {
	return m.CO2eGramsPerTonneKm * distanceKm * quantityTonnes / 1e6
}
