package steel

// EmissionFactors holds the factors used for scope 2 and scope 3
// accounting. Scope 1 intensities live on the TechnologyProfile.
type EmissionFactors struct {
	// ElectricityGramsCO2PerKWh is the grid intensity; varies by region.
	ElectricityGramsCO2PerKWh float64
	// UpstreamTCO2PerTonne holds upstream (scope 3) emissions per tonne of
	// raw material produced and transported.
	UpstreamTCO2PerTonne map[Material]float64
}

// DefaultEmissionFactors returns the built-in factor set.
func DefaultEmissionFactors() EmissionFactors {
	return EmissionFactors{
		ElectricityGramsCO2PerKWh: 400,
		UpstreamTCO2PerTonne: map[Material]float64{
			IronOre:    0.1,
			CokingCoal: 0.2,
			ScrapSteel: 0.05, // lower due to recycling benefits
			NaturalGas: 0.25,
			Hydrogen:   10.0, // grey H2 from SMR; green H2 would be near 0
		},
	}
}

// ElectricityTCO2PerMWh converts the grid intensity to tonnes per MWh.
func (f EmissionFactors) ElectricityTCO2PerMWh() float64 {
	return f.ElectricityGramsCO2PerKWh / 1000.0
}

// EmissionBreakdown is a per-activity emission result in tonnes CO2e.
type EmissionBreakdown struct {
	Scope1 float64 // direct process emissions
	Scope2 float64 // purchased electricity
	Scope3 float64 // upstream raw materials
}

// Total returns the sum across scopes.
func (b EmissionBreakdown) Total() float64 { return b.Scope1 + b.Scope2 + b.Scope3 }

// EmissionCalculator computes CO2e emissions for production activities.
type EmissionCalculator struct {
	Factors EmissionFactors
}

// NewEmissionCalculator creates a calculator; zero-valued factors fall back
// to the defaults.
func NewEmissionCalculator(factors EmissionFactors) EmissionCalculator {
	if factors.ElectricityGramsCO2PerKWh == 0 && factors.UpstreamTCO2PerTonne == nil {
		factors = DefaultEmissionFactors()
	}
	return EmissionCalculator{Factors: factors}
}

// ProductionEmissions computes the scope 1/2/3 breakdown for producing
// tonnes of steel with the given technology and material consumption.
func (c EmissionCalculator) ProductionEmissions(profile TechnologyProfile, tonnes float64, consumed map[Material]float64) EmissionBreakdown {
	b := EmissionBreakdown{
		Scope1: profile.CO2TonnesPerTonne * tonnes,
		Scope2: profile.EnergyMWhPerTonne * tonnes * c.Factors.ElectricityTCO2PerMWh(),
	}
	for material, qty := range consumed {
		b.Scope3 += c.Factors.UpstreamTCO2PerTonne[material] * qty
	}
	return b
}
