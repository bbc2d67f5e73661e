// Package steel holds the domain computation behind the agent variants:
// production technology profiles, cost and emission calculators, financial
// metrics, transport modes, and inventories. Everything here is pure
// arithmetic over plain values; the engine never imports this package.
package steel

// TechnologyType identifies a steelmaking route.
type TechnologyType string

const (
	TechBFBOF        TechnologyType = "bf-bof"       // Blast Furnace - Basic Oxygen Furnace
	TechEAF          TechnologyType = "eaf"          // Electric Arc Furnace
	TechDRIEAF       TechnologyType = "dri-eaf"      // Direct Reduced Iron - EAF
	TechHydrogenDRI  TechnologyType = "hydrogen-dri" // Hydrogen-based DRI
	TechElectrolysis TechnologyType = "electrolysis"
)

// Material identifies a raw material input.
type Material string

const (
	IronOre    Material = "iron_ore"
	CokingCoal Material = "coking_coal"
	ScrapSteel Material = "scrap_steel"
	NaturalGas Material = "natural_gas"
	Hydrogen   Material = "hydrogen"
	Limestone  Material = "limestone"
	Alloys     Material = "alloys"
)

// TechnologyProfile describes one production route: raw material inputs per
// tonne of crude steel, energy intensity, direct (scope 1) emission
// intensity, and indicative conversion cost excluding materials and energy.
type TechnologyProfile struct {
	Type                   TechnologyType
	Inputs                 map[Material]float64 // tonnes per tonne of crude steel
	EnergyMWhPerTonne      float64
	CO2TonnesPerTonne      float64 // scope 1
	TypicalEfficiency      float64
	ConversionCostPerTonne float64 // USD, excluding materials and energy
	CapexPerTonneCapacity  float64 // USD per tonne of annual capacity
}

// DefaultProfiles returns the built-in technology parameter table.
// Illustrative values; scenario data may override them.
func DefaultProfiles() map[TechnologyType]TechnologyProfile {
	return map[TechnologyType]TechnologyProfile{
		TechBFBOF: {
			Type:                   TechBFBOF,
			Inputs:                 map[Material]float64{IronOre: 1.4, CokingCoal: 0.7, Limestone: 0.25},
			EnergyMWhPerTonne:      5.0,
			CO2TonnesPerTonne:      1.8,
			TypicalEfficiency:      0.92,
			ConversionCostPerTonne: 100,
			CapexPerTonneCapacity:  800,
		},
		TechEAF: {
			Type:                   TechEAF,
			Inputs:                 map[Material]float64{ScrapSteel: 1.1, Alloys: 0.05, Limestone: 0.05},
			EnergyMWhPerTonne:      0.6,
			CO2TonnesPerTonne:      0.4,
			TypicalEfficiency:      0.95,
			ConversionCostPerTonne: 60,
			CapexPerTonneCapacity:  500,
		},
		TechDRIEAF: {
			Type:                   TechDRIEAF,
			Inputs:                 map[Material]float64{IronOre: 1.4, NaturalGas: 0.3, ScrapSteel: 0.2, Limestone: 0.1},
			EnergyMWhPerTonne:      2.5,
			CO2TonnesPerTonne:      1.0,
			TypicalEfficiency:      0.90,
			ConversionCostPerTonne: 120,
			CapexPerTonneCapacity:  1000,
		},
		TechHydrogenDRI: {
			Type:                   TechHydrogenDRI,
			Inputs:                 map[Material]float64{IronOre: 1.4, Hydrogen: 0.055, ScrapSteel: 0.1},
			EnergyMWhPerTonne:      3.0,
			CO2TonnesPerTonne:      0.1,
			TypicalEfficiency:      0.88,
			ConversionCostPerTonne: 150,
			CapexPerTonneCapacity:  1500,
		},
	}
}

// ParseTechnologyType maps a string to a known TechnologyType.
func ParseTechnologyType(s string) (TechnologyType, bool) {
	switch TechnologyType(s) {
	case TechBFBOF, TechEAF, TechDRIEAF, TechHydrogenDRI, TechElectrolysis:
		return TechnologyType(s), true
	}
	return "", false
}
