package steel

// CostCalculator computes production costs for a plant or process.
type CostCalculator struct {
	// CarbonPricePerTonneCO2 prices emissions (carbon tax or ETS allowance).
	CarbonPricePerTonneCO2 float64
}

// RawMaterialCost totals the cost of consumed materials at the given
// prices. Materials without a listed price contribute nothing; the second
// return value lists them so callers can log the gap.
func (c CostCalculator) RawMaterialCost(consumed map[Material]float64, prices map[Material]float64) (float64, []Material) {
	var total float64
	var unpriced []Material
	for material, qty := range consumed {
		price, ok := prices[material]
		if !ok {
			unpriced = append(unpriced, material)
			continue
		}
		total += qty * price
	}
	return total, unpriced
}

// OperationalCost totals OPEX for a production run: raw materials, energy,
// and the technology's conversion cost (labor, maintenance, consumables).
func (c CostCalculator) OperationalCost(profile TechnologyProfile, tonnes, rawMaterialCost, energyPricePerMWh float64) float64 {
	energyCost := profile.EnergyMWhPerTonne * tonnes * energyPricePerMWh
	return rawMaterialCost + energyCost + profile.ConversionCostPerTonne*tonnes
}

// CarbonCost prices the given emissions.
func (c CostCalculator) CarbonCost(emissionsTonnesCO2 float64) float64 {
	return c.CarbonPricePerTonneCO2 * emissionsTonnesCO2
}
