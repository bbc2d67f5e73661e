package steel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func appraisalPrices() map[Material]float64 {
	return map[Material]float64{
		IronOre:    120,
		CokingCoal: 250,
		ScrapSteel: 300,
		Hydrogen:   4000,
		Limestone:  30,
	}
}

// TestAnnualProductionCost verifies the yearly cost roll-up against hand
// figures for 1 Mt of BF-BOF capacity.
func TestAnnualProductionCost(t *testing.T) {
	costs := CostCalculator{CarbonPricePerTonneCO2: 100}
	profile := DefaultProfiles()[TechBFBOF]

	// Raw 350.5/t + energy 5.0*60 + conversion 100 + carbon 1.8*100.
	got := AnnualProductionCost(profile, 1_000_000, appraisalPrices(), 60, costs)
	require.InDelta(t, 930.5e6, got, 1e-3)
}

// TestAppraiseTechnologySwitch verifies the switch metrics for a BF-BOF to
// hydrogen-DRI conversion at a 100 USD/t carbon price.
func TestAppraiseTechnologySwitch(t *testing.T) {
	// GIVEN 1 Mt/yr of BF-BOF capacity and a hydrogen-DRI target
	profiles := DefaultProfiles()
	costs := CostCalculator{CarbonPricePerTonneCO2: 100}
	finance := FinancialCalculator{DefaultDiscountRate: 0.08}

	// WHEN appraising over 20 years
	a := finance.AppraiseTechnologySwitch(profiles[TechBFBOF], profiles[TechHydrogenDRI],
		1_000_000, appraisalPrices(), 60, costs, 20)

	// THEN capex is 1500 USD/t of capacity and the annual saving is the
	// production cost delta: 930.5M - 758M
	require.Equal(t, TechHydrogenDRI, a.Target)
	require.InDelta(t, 1500e6, a.Capex, 1e-3)
	require.InDelta(t, 172.5e6, a.AnnualSavings, 1e-3)

	// NPV of a 172.5M annuity over 20 years at 8% minus the capex.
	require.InDelta(t, 193.63e6, a.NPV, 1e5)
	require.True(t, a.IRRValid)
	require.InDelta(t, 0.097, a.IRR, 2e-3)
	require.InDelta(t, 1.3, a.ROI, 1e-9)
	require.True(t, a.Recovered)
	require.InDelta(t, 1500.0/172.5, a.PaybackYears, 1e-9)
}

// TestAppraiseTechnologySwitch_NeverPaysOff verifies a conversion that
// raises operating cost reports no return.
func TestAppraiseTechnologySwitch_NeverPaysOff(t *testing.T) {
	// GIVEN an EAF plant, already cheap and clean, at a mild carbon price
	profiles := DefaultProfiles()
	costs := CostCalculator{CarbonPricePerTonneCO2: 50}
	finance := FinancialCalculator{DefaultDiscountRate: 0.08}

	a := finance.AppraiseTechnologySwitch(profiles[TechEAF], profiles[TechHydrogenDRI],
		1_000_000, appraisalPrices(), 60, costs, 20)

	// THEN every flow is negative: no IRR, no payback, negative NPV
	require.Negative(t, a.AnnualSavings)
	require.Negative(t, a.NPV)
	require.False(t, a.IRRValid)
	require.False(t, a.Recovered)
}
