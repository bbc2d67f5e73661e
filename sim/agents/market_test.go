package agents

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steelpath/steelpath/sim"
)

func newSteelMarket(t *testing.T, cfg MarketConfig, rng *rand.Rand) *Market {
	t.Helper()
	if cfg.ID == "" {
		cfg.ID = "market-1"
	}
	if len(cfg.Products) == 0 {
		cfg.Products = []string{"steel"}
	}
	m, err := NewMarket(cfg, rng)
	require.NoError(t, err)
	return m
}

// findPrice returns the proposed price-set effect for a commodity.
func findPrice(t *testing.T, effects []sim.Effect, commodity string) float64 {
	t.Helper()
	for _, eff := range effects {
		if eff.Scope == sim.ScopePrice && eff.Key == commodity {
			return eff.Value
		}
	}
	t.Fatalf("no price effect for %q in %v", commodity, effects)
	return 0
}

// TestMarket_PriceRisesOnExcessDemand verifies the clearing rule moves the
// price toward the short side of the market.
func TestMarket_PriceRisesOnExcessDemand(t *testing.T) {
	// GIVEN demand at twice the supply and a listed price of 700
	market := newSteelMarket(t, MarketConfig{}, nil)
	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(market, nil))
	world.SetPrice("steel", 700)
	world.SetAggregate("demand.steel", 2000)
	world.SetAggregate("supply.steel", 1000)

	// WHEN stepping
	props, err := market.Step(day(1), world.View())
	require.NoError(t, err)

	// THEN factor = (2000-1000)/2000 * 0.1 = +5%
	require.InDelta(t, 735, findPrice(t, props.Effects, "steel"), 1e-9)
}

// TestMarket_PriceMoveClampedAndFloored verifies the per-tick cap and the
// price floor.
func TestMarket_PriceMoveClampedAndFloored(t *testing.T) {
	// GIVEN an oversupplied market with aggressive sensitivity
	market := newSteelMarket(t, MarketConfig{Sensitivity: 5}, nil)
	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(market, nil))
	world.SetPrice("steel", 700)
	world.SetAggregate("supply.steel", 10_000)

	props, err := market.Step(day(1), world.View())
	require.NoError(t, err)

	// THEN the raw -500% move clamps to the default -20% cap
	require.InDelta(t, 560, findPrice(t, props.Effects, "steel"), 1e-9)

	// AND a price near the floor cannot fall through it
	world.SetPrice("steel", 12)
	props, err = market.Step(day(2), world.View())
	require.NoError(t, err)
	require.InDelta(t, 10, findPrice(t, props.Effects, "steel"), 1e-9)
}

// TestMarket_UnlistedProductSeedsDefaultPrice verifies a product with no
// listed price starts from the default.
func TestMarket_UnlistedProductSeedsDefaultPrice(t *testing.T) {
	market := newSteelMarket(t, MarketConfig{Products: []string{"rebar"}}, nil)
	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(market, nil))

	props, err := market.Step(day(1), world.View())
	require.NoError(t, err)
	// Balanced (empty) market: the default 100 carries over unchanged.
	require.InDelta(t, 100, findPrice(t, props.Effects, "rebar"), 1e-9)
}

// TestMarket_RegistersOwnDemand verifies the configured per-tick demand is
// proposed as an aggregate addition.
func TestMarket_RegistersOwnDemand(t *testing.T) {
	market := newSteelMarket(t, MarketConfig{
		DemandPerTick: map[string]float64{"steel": 1200},
	}, nil)
	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(market, nil))
	world.SetPrice("steel", 700)

	props, err := market.Step(day(1), world.View())
	require.NoError(t, err)
	require.InDelta(t, 1200, sumAggregate(props.Effects, "demand.steel"), 1e-9)
}

// TestMarket_NoiseIsSeedDeterministic verifies two markets with equally
// seeded RNGs propose identical noisy prices.
func TestMarket_NoiseIsSeedDeterministic(t *testing.T) {
	build := func() sim.Proposals {
		market := newSteelMarket(t, MarketConfig{NoiseStdDev: 0.05}, rand.New(rand.NewSource(99)))
		world := sim.NewWorldState()
		require.NoError(t, world.AddAgent(market, nil))
		world.SetPrice("steel", 700)
		props, err := market.Step(day(1), world.View())
		require.NoError(t, err)
		return props
	}
	first := build()
	second := build()
	require.Equal(t, findPrice(t, first.Effects, "steel"), findPrice(t, second.Effects, "steel"))
}

// TestMarket_HandlePriceUpdate verifies external price shocks map straight
// to price-set effects, and unknown kinds are ignored.
func TestMarket_HandlePriceUpdate(t *testing.T) {
	market := newSteelMarket(t, MarketConfig{}, nil)
	world := sim.NewWorldState()
	require.NoError(t, world.AddAgent(market, nil))

	props, err := market.HandleEvent(day(1), sim.Event{
		Kind:    EventPriceUpdate,
		Target:  "market-1",
		Payload: map[string]float64{"steel": 820, "scrap_steel": 350},
	}, world.View())
	require.NoError(t, err)
	require.InDelta(t, 820, findPrice(t, props.Effects, "steel"), 1e-9)
	require.InDelta(t, 350, findPrice(t, props.Effects, "scrap_steel"), 1e-9)

	props, err = market.HandleEvent(day(1), sim.Event{Kind: "SOLAR_FLARE", Target: "market-1"}, world.View())
	require.NoError(t, err)
	require.Empty(t, props.Effects)
}

// TestNewMarket_Validation covers the constructor checks and the sorted
// product order.
func TestNewMarket_Validation(t *testing.T) {
	if _, err := NewMarket(MarketConfig{Products: []string{"steel"}}, nil); err == nil {
		t.Error("missing identifier should fail")
	}
	if _, err := NewMarket(MarketConfig{ID: "market-1"}, nil); err == nil {
		t.Error("empty product list should fail")
	}

	m, err := NewMarket(MarketConfig{ID: "market-1", Products: []string{"zinc", "steel", "alloys"}}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"alloys", "steel", "zinc"}, m.cfg.Products)
	require.Equal(t, sim.KindMarket, m.Kind())
}
