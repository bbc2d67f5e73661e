package steel

import (
	"math"
	"testing"
)

// TestInventory_AddClampsToCapacity verifies adds clamp at the capacity
// cap and report the applied quantity.
func TestInventory_AddClampsToCapacity(t *testing.T) {
	inv := Inventory{Item: "iron_ore", CapacityTonnes: 100, LevelTonnes: 80}

	if applied := inv.Add(50); applied != 20 {
		t.Errorf("expected 20 applied, got %v", applied)
	}
	if inv.LevelTonnes != 100 {
		t.Errorf("level should cap at 100, got %v", inv.LevelTonnes)
	}
	if applied := inv.Add(10); applied != 0 {
		t.Errorf("full store must apply 0, got %v", applied)
	}

	// Uncapped inventory takes everything.
	open := Inventory{Item: "scrap_steel"}
	if applied := open.Add(1e6); applied != 1e6 {
		t.Errorf("uncapped add should apply fully, got %v", applied)
	}
}

// TestInventory_RemoveClampsToLevel verifies removals never drive the
// level negative.
func TestInventory_RemoveClampsToLevel(t *testing.T) {
	inv := Inventory{Item: "coking_coal", LevelTonnes: 30}

	if applied := inv.Remove(50); applied != 30 {
		t.Errorf("expected 30 applied, got %v", applied)
	}
	if inv.LevelTonnes != 0 {
		t.Errorf("level should floor at 0, got %v", inv.LevelTonnes)
	}
	if applied := inv.Remove(-5); applied != 0 {
		t.Errorf("negative removal must be a no-op, got %v", applied)
	}
}

// TestInventory_HoldingCost verifies pro-rated carrying cost.
func TestInventory_HoldingCost(t *testing.T) {
	inv := Inventory{Item: "steel", LevelTonnes: 1200, HoldingCostPerTonneYear: 24}
	// One month of carrying 1200 t at 24 USD/t/year
	if cost := inv.HoldingCost(1.0 / 12); math.Abs(cost-2400) > 1e-9 {
		t.Errorf("expected 2400, got %v", cost)
	}
}
