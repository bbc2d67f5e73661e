package steel

// Inventory tracks a single item's stock with a capacity cap. Add and
// Remove clamp to the feasible quantity and return what was applied, so
// callers can detect constrained moves.
type Inventory struct {
	Item                    string
	CapacityTonnes          float64 // 0 = unconstrained
	LevelTonnes             float64
	HoldingCostPerTonneYear float64
}

// Add puts stock in, clamped to capacity. Returns the quantity applied.
func (inv *Inventory) Add(quantityTonnes float64) float64 {
	if quantityTonnes <= 0 {
		return 0
	}
	applied := quantityTonnes
	if inv.CapacityTonnes > 0 && inv.LevelTonnes+quantityTonnes > inv.CapacityTonnes {
		applied = inv.CapacityTonnes - inv.LevelTonnes
		if applied < 0 {
			applied = 0
		}
	}
	inv.LevelTonnes += applied
	return applied
}

// Remove takes stock out, clamped to the available level. Returns the
// quantity applied.
func (inv *Inventory) Remove(quantityTonnes float64) float64 {
	if quantityTonnes <= 0 {
		return 0
	}
	applied := quantityTonnes
	if applied > inv.LevelTonnes {
		applied = inv.LevelTonnes
	}
	inv.LevelTonnes -= applied
	return applied
}

// HoldingCost returns the cost of carrying the current level for the given
// fraction of a year (e.g. 1.0/12 for one month).
func (inv *Inventory) HoldingCost(fractionOfYear float64) float64 {
	return inv.LevelTonnes * inv.HoldingCostPerTonneYear * fractionOfYear
}
