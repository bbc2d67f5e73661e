package steel

// SwitchAppraisal is the outcome of evaluating a conversion of existing
// capacity from one production route to another: upfront capex, the yearly
// operating cost delta, and the standard investment metrics over the
// appraisal horizon.
type SwitchAppraisal struct {
	Target        TechnologyType
	Capex         float64
	AnnualSavings float64
	NPV           float64
	IRR           float64
	IRRValid      bool
	ROI           float64
	PaybackYears  float64
	Recovered     bool
}

// AnnualProductionCost is the yearly cost of running the given capacity on
// one technology: raw materials, energy, conversion, and carbon.
func AnnualProductionCost(profile TechnologyProfile, capacityTonnesPerYear float64, prices map[Material]float64, energyPricePerMWh float64, costs CostCalculator) float64 {
	consumed := make(map[Material]float64, len(profile.Inputs))
	for m, perTonne := range profile.Inputs {
		consumed[m] = perTonne * capacityTonnesPerYear
	}
	rawCost, _ := costs.RawMaterialCost(consumed, prices)
	opex := costs.OperationalCost(profile, capacityTonnesPerYear, rawCost, energyPricePerMWh)
	carbon := costs.CarbonCost(profile.CO2TonnesPerTonne * capacityTonnesPerYear)
	return opex + carbon
}

// AppraiseTechnologySwitch evaluates converting capacity from the current
// route to the target over horizonYears. Capex comes from the target's
// per-tonne capacity figure; the annual cash flow is the production cost
// saving at today's prices and carbon price. NPV is discounted at the
// calculator's default rate.
func (f FinancialCalculator) AppraiseTechnologySwitch(current, target TechnologyProfile, capacityTonnesPerYear float64, prices map[Material]float64, energyPricePerMWh float64, costs CostCalculator, horizonYears int) SwitchAppraisal {
	capex := target.CapexPerTonneCapacity * capacityTonnesPerYear
	savings := AnnualProductionCost(current, capacityTonnesPerYear, prices, energyPricePerMWh, costs) -
		AnnualProductionCost(target, capacityTonnesPerYear, prices, energyPricePerMWh, costs)

	flows := make([]float64, horizonYears+1)
	flows[0] = -capex
	for year := 1; year <= horizonYears; year++ {
		flows[year] = savings
	}

	appraisal := SwitchAppraisal{Target: target.Type, Capex: capex, AnnualSavings: savings}
	appraisal.NPV = f.NPV(flows, 0)
	appraisal.IRR, appraisal.IRRValid = f.IRR(flows)
	appraisal.ROI, _ = f.ROI(savings*float64(horizonYears)-capex, capex)
	appraisal.PaybackYears, appraisal.Recovered = f.PaybackPeriod(capex, flows[1:])
	return appraisal
}
