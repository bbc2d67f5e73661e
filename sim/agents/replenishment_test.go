package agents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/steel"
)

// TestReplenishmentRoundTrip runs the full supply loop through the engine:
// a low-stock plant files a replenishment request, the supplier dispatches
// a shipment whose transport lead is shorter than the tick, and the
// arrival books into inventory with the outstanding order cleared. The
// arrival must survive even though it lands between ticks; an arrival
// based on the request's own timestamp would fall behind the queue's drain
// time and be dropped, leaving the plant starving with on_order stuck.
func TestReplenishmentRoundTrip(t *testing.T) {
	// GIVEN a 1000 t/day EAF plant five days from empty and a rail
	// supplier 200 km out (5h lead against 24h ticks)
	plant, err := NewPlant(PlantConfig{
		ID:                    "plant-1",
		CapacityTonnesPerYear: 365_000,
		TechnologyMix:         map[steel.TechnologyType]float64{steel.TechEAF: 1.0},
		SupplierID:            "supplier-1",
		StepsPerYear:          365,
	}, nil, steel.CostCalculator{CarbonPricePerTonneCO2: 50}, steel.NewEmissionCalculator(steel.DefaultEmissionFactors()))
	require.NoError(t, err)

	supplier, err := NewSupplier(SupplierConfig{
		ID:            "supplier-1",
		Materials:     []steel.Material{steel.ScrapSteel, steel.Alloys, steel.Limestone},
		TransportMode: "rail",
		DistanceKm:    200,
	}, nil)
	require.NoError(t, err)

	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(supplier, nil))
	require.NoError(t, world.AddAgent(plant, map[string]float64{
		"inventory.scrap_steel": 5_500,
		"inventory.alloys":      100_000,
		"inventory.limestone":   100_000,
	}))
	world.SetPrice("steel", 700)
	world.SetPrice("scrap_steel", 300)
	world.SetPrice("alloys", 1500)
	world.SetPrice("limestone", 30)
	world.SetPrice("electricity", 60)

	clock, err := sim.NewSimulationClock(day(1), 24*time.Hour, time.Time{}, 6)
	require.NoError(t, err)
	engine := sim.NewEngine("replenishment", clock, world, sim.ErrorPolicyFail)

	// WHEN running six daily ticks
	result, err := engine.Run()
	require.NoError(t, err)
	require.False(t, result.Failed)
	require.Len(t, result.Snapshots, 6)

	// THEN nothing was dropped on the way
	for _, rec := range result.Log {
		require.NotEqual(t, sim.LogDroppedEvent, rec.Kind, "dropped: %s", rec.Detail)
	}

	// The single shipment arrived and cleared the outstanding order.
	final := result.Snapshots[5]
	require.InDelta(t, 1, final.Aggregates["shipments_dispatched"], 1e-9)
	onOrder, ok := world.AgentAttr("plant-1", "on_order.scrap_steel")
	require.True(t, ok)
	require.InDelta(t, 0, onOrder, 1e-9)

	// Production never stalled: the order of 33000 t landed on day 3,
	// well before the initial five days of cover ran out.
	require.InDelta(t, 6000, final.Aggregates["cumulative_output"], 1e-9)
	scrap, ok := world.AgentAttr("plant-1", "inventory.scrap_steel")
	require.True(t, ok)
	require.InDelta(t, 5_500+33_000-6*1_100, scrap, 1e-6)
}
