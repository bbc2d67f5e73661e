package worldgen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/steelpath/steelpath/sim/steel"
)

// SyntheticParams controls synthetic world generation.
type SyntheticParams struct {
	NumberOfPlants    int
	NumberOfSuppliers int
	Regions           []string
}

// Default commodity prices (USD per tonne, electricity per MWh) used to
// seed synthetic market data. Illustrative values.
var defaultPrices = map[string]float64{
	"steel":       700,
	"iron_ore":    120,
	"coking_coal": 250,
	"scrap_steel": 300,
	"natural_gas": 200,
	"hydrogen":    4000,
	"limestone":   30,
	"alloys":      1500,
	"electricity": 60,
}

// syntheticTechMixes are the technology mixes assigned round-robin to
// generated plants, covering the main steelmaking routes.
var syntheticTechMixes = []map[steel.TechnologyType]float64{
	{steel.TechBFBOF: 1.0},
	{steel.TechEAF: 1.0},
	{steel.TechBFBOF: 0.7, steel.TechEAF: 0.3},
	{steel.TechDRIEAF: 1.0},
	{steel.TechBFBOF: 0.5, steel.TechHydrogenDRI: 0.5},
}

var syntheticTransportModes = []string{"rail", "truck", "ship-coastal"}

// newID derives a reproducible identifier from the generation RNG.
// uuid.NewRandomFromReader reads its bytes from rng, so the same seed
// yields the same identifiers.
func newID(prefix string, rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand's Read never fails.
		panic(err)
	}
	return fmt.Sprintf("%s-%s", prefix, id.String()[:8])
}

// Generate creates a deterministic synthetic world: suppliers spread over
// the regions, plants with varied capacities and technology mixes wired to
// a supplier in their region, and one market per region listing steel and
// raw material prices.
func Generate(params SyntheticParams, rng *rand.Rand) ([]PlantRecord, []SupplierRecord, []MarketRecord, error) {
	if params.NumberOfPlants <= 0 {
		return nil, nil, nil, fmt.Errorf("synthetic generation requires at least one plant")
	}
	if params.NumberOfSuppliers <= 0 {
		params.NumberOfSuppliers = 1
	}
	if len(params.Regions) == 0 {
		params.Regions = []string{"Europe", "North America", "Asia Pacific"}
	}

	suppliers := make([]SupplierRecord, 0, params.NumberOfSuppliers)
	allMaterials := []steel.Material{
		steel.IronOre, steel.CokingCoal, steel.ScrapSteel,
		steel.NaturalGas, steel.Hydrogen, steel.Limestone, steel.Alloys,
	}
	for i := 0; i < params.NumberOfSuppliers; i++ {
		region := params.Regions[i%len(params.Regions)]
		suppliers = append(suppliers, SupplierRecord{
			SupplierID:    newID("supplier", rng),
			Name:          fmt.Sprintf("%s Raw Materials %d", region, i+1),
			Region:        region,
			Materials:     allMaterials,
			TransportMode: syntheticTransportModes[i%len(syntheticTransportModes)],
			DistanceKm:    200 + rng.Float64()*1800,
		})
	}

	suppliersByRegion := map[string][]SupplierRecord{}
	for _, s := range suppliers {
		suppliersByRegion[s.Region] = append(suppliersByRegion[s.Region], s)
	}

	plants := make([]PlantRecord, 0, params.NumberOfPlants)
	for i := 0; i < params.NumberOfPlants; i++ {
		region := params.Regions[i%len(params.Regions)]
		regionSuppliers := suppliersByRegion[region]
		if len(regionSuppliers) == 0 {
			regionSuppliers = suppliers
		}
		plants = append(plants, PlantRecord{
			PlantID:               newID("plant", rng),
			Name:                  fmt.Sprintf("%s Steel Works %d", region, i+1),
			Region:                region,
			CapacityTonnesPerYear: float64(500_000 + rng.Intn(9)*500_000), // 0.5 to 4.5 Mtpa
			TechnologyMix:         syntheticTechMixes[i%len(syntheticTechMixes)],
			EfficiencyFactor:      0.85 + rng.Float64()*0.15,
			SupplierID:            regionSuppliers[rng.Intn(len(regionSuppliers))].SupplierID,
		})
	}

	markets := make([]MarketRecord, 0, len(params.Regions)*len(defaultPrices))
	for _, region := range params.Regions {
		marketID := newID("market", rng)
		for _, product := range sortedPriceKeys() {
			rec := MarketRecord{
				MarketID:         marketID,
				Region:           region,
				Product:          product,
				PriceUSDPerTonne: defaultPrices[product] * (0.9 + rng.Float64()*0.2),
			}
			if product == "steel" {
				// Regional steel demand in the order of the region's plant capacity.
				rec.DemandTonnesPerTick = 1000 + rng.Float64()*9000
			}
			markets = append(markets, rec)
		}
	}

	for _, p := range plants {
		if err := p.Validate(); err != nil {
			return nil, nil, nil, fmt.Errorf("synthetic plant invalid: %w", err)
		}
	}
	return plants, suppliers, markets, nil
}

// sortedPriceKeys returns the commodity names in stable order so that
// generation consumes RNG draws in a fixed sequence for a given seed.
func sortedPriceKeys() []string {
	keys := make([]string, 0, len(defaultPrices))
	for k := range defaultPrices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
