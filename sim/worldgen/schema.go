// Package worldgen populates the initial WorldState: validated input
// records, CSV loading, synthetic data generation, and assembly of the
// agent roster. The engine treats the result as an opaque initial world
// and does not re-validate domain content.
package worldgen

import (
	"fmt"

	"github.com/steelpath/steelpath/sim/steel"
)

// PlantRecord is one steel plant row from input data.
type PlantRecord struct {
	PlantID               string
	Name                  string
	Country               string
	Region                string
	CapacityTonnesPerYear float64
	TechnologyMix         map[steel.TechnologyType]float64
	EfficiencyFactor      float64
	SupplierID            string
	StorageCapacityTonnes float64
}

// Validate checks domain constraints before the record reaches the engine.
func (r PlantRecord) Validate() error {
	if r.PlantID == "" {
		return fmt.Errorf("plant record: plant_id is required")
	}
	if r.CapacityTonnesPerYear <= 0 {
		return fmt.Errorf("plant %s: production capacity must be positive", r.PlantID)
	}
	if len(r.TechnologyMix) == 0 {
		return fmt.Errorf("plant %s: technology mix is required", r.PlantID)
	}
	var sum float64
	for tech, share := range r.TechnologyMix {
		if _, ok := steel.ParseTechnologyType(string(tech)); !ok {
			return fmt.Errorf("plant %s: unknown technology %q", r.PlantID, tech)
		}
		if share < 0 || share > 1 {
			return fmt.Errorf("plant %s: share for %q must be between 0 and 1", r.PlantID, tech)
		}
		sum += share
	}
	// Allow for small floating point inaccuracies.
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("plant %s: technology mix shares must sum to approximately 1.0, got %.3f", r.PlantID, sum)
	}
	if r.EfficiencyFactor != 0 && (r.EfficiencyFactor < 0.5 || r.EfficiencyFactor > 1.5) {
		return fmt.Errorf("plant %s: efficiency factor must be within [0.5, 1.5]", r.PlantID)
	}
	return nil
}

// SupplierRecord is one raw material supplier row.
type SupplierRecord struct {
	SupplierID    string
	Name          string
	Region        string
	Materials     []steel.Material
	TransportMode string
	DistanceKm    float64
}

// Validate checks domain constraints.
func (r SupplierRecord) Validate() error {
	if r.SupplierID == "" {
		return fmt.Errorf("supplier record: supplier_id is required")
	}
	if len(r.Materials) == 0 {
		return fmt.Errorf("supplier %s: at least one material is required", r.SupplierID)
	}
	if r.DistanceKm <= 0 {
		return fmt.Errorf("supplier %s: distance must be positive", r.SupplierID)
	}
	if _, ok := steel.DefaultTransportModes()[r.TransportMode]; !ok {
		return fmt.Errorf("supplier %s: unknown transport mode %q", r.SupplierID, r.TransportMode)
	}
	return nil
}

// MarketRecord is one market data point: a commodity listed in a regional
// market with its initial price and per-tick demand.
type MarketRecord struct {
	MarketID            string
	Region              string
	Product             string
	PriceUSDPerTonne    float64
	DemandTonnesPerTick float64
}

// Validate checks domain constraints.
func (r MarketRecord) Validate() error {
	if r.MarketID == "" {
		return fmt.Errorf("market record: market_id is required")
	}
	if r.Product == "" {
		return fmt.Errorf("market %s: product is required", r.MarketID)
	}
	if r.PriceUSDPerTonne < 0 {
		return fmt.Errorf("market %s: price for %s must be non-negative", r.MarketID, r.Product)
	}
	if r.DemandTonnesPerTick < 0 {
		return fmt.Errorf("market %s: demand for %s must be non-negative", r.MarketID, r.Product)
	}
	return nil
}
