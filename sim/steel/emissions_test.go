package steel

import (
	"math"
	"testing"
)

// TestProductionEmissions_BFBOF verifies the scope 1/2/3 breakdown for the
// conventional route against hand-computed values.
func TestProductionEmissions_BFBOF(t *testing.T) {
	calc := NewEmissionCalculator(DefaultEmissionFactors())
	profile := DefaultProfiles()[TechBFBOF]

	// GIVEN 100 t of crude steel with the profile's stoichiometric inputs
	consumed := map[Material]float64{
		IronOre:    1.4 * 100,
		CokingCoal: 0.7 * 100,
		Limestone:  0.25 * 100,
	}

	// WHEN computing emissions
	b := calc.ProductionEmissions(profile, 100, consumed)

	// THEN scope 1 = 1.8 * 100
	if b.Scope1 != 180 {
		t.Errorf("scope 1: expected 180, got %v", b.Scope1)
	}
	// scope 2 = 5.0 MWh/t * 100 t * 0.4 t/MWh
	if math.Abs(b.Scope2-200) > 1e-9 {
		t.Errorf("scope 2: expected 200, got %v", b.Scope2)
	}
	// scope 3 = 140*0.1 + 70*0.2 + 25*0 (limestone has no upstream factor)
	if math.Abs(b.Scope3-28) > 1e-9 {
		t.Errorf("scope 3: expected 28, got %v", b.Scope3)
	}
	if math.Abs(b.Total()-408) > 1e-9 {
		t.Errorf("total: expected 408, got %v", b.Total())
	}
}

// TestProductionEmissions_HydrogenRouteIsCleaner verifies the relative
// ordering the technology table encodes: hydrogen DRI emits far less
// direct CO2 than BF-BOF per tonne.
func TestProductionEmissions_HydrogenRouteIsCleaner(t *testing.T) {
	calc := NewEmissionCalculator(DefaultEmissionFactors())
	profiles := DefaultProfiles()

	bfbof := calc.ProductionEmissions(profiles[TechBFBOF], 1, profiles[TechBFBOF].Inputs)
	h2dri := calc.ProductionEmissions(profiles[TechHydrogenDRI], 1, profiles[TechHydrogenDRI].Inputs)

	if h2dri.Scope1 >= bfbof.Scope1 {
		t.Errorf("hydrogen DRI scope 1 (%v) should undercut BF-BOF (%v)", h2dri.Scope1, bfbof.Scope1)
	}
}

// TestNewEmissionCalculator_ZeroFactorsFallBack verifies default factors
// kick in for an empty factor set.
func TestNewEmissionCalculator_ZeroFactorsFallBack(t *testing.T) {
	calc := NewEmissionCalculator(EmissionFactors{})
	if calc.Factors.ElectricityGramsCO2PerKWh != 400 {
		t.Errorf("expected default grid intensity, got %v", calc.Factors.ElectricityGramsCO2PerKWh)
	}
}
