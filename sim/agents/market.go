package agents

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/steelpath/steelpath/sim"
)

// MarketConfig parameterizes a market agent.
type MarketConfig struct {
	ID     string
	Region string
	// Products lists the commodities whose prices this market manages.
	Products []string
	// DemandPerTick is the demand (tonnes) this market adds per product
	// per tick, accumulated into the "demand.<product>" aggregate.
	DemandPerTick map[string]float64
	// Sensitivity scales the price response to the supply/demand
	// imbalance (the price adjustment factor of the clearing rule).
	Sensitivity float64
	// MaxChangeFraction caps the per-tick relative price move.
	MaxChangeFraction float64
	// NoiseStdDev adds seeded gaussian noise to the relative move.
	NoiseStdDev float64
	// MinPrice is the price floor.
	MinPrice float64
	// DefaultPrice seeds a product that has no listed price yet.
	DefaultPrice float64
}

// Market adjusts commodity prices toward supply/demand balance each tick
// using a simple price-adjustment clearing rule, and registers its own
// demand. It proposes price-set effects; it never mutates prices directly.
type Market struct {
	cfg MarketConfig
	rng *rand.Rand
}

// NewMarket creates a market agent. rng drives the price noise and must
// come from the run's partitioned RNG for reproducibility.
func NewMarket(cfg MarketConfig, rng *rand.Rand) (*Market, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("market requires an identifier")
	}
	if len(cfg.Products) == 0 {
		return nil, fmt.Errorf("market %s: at least one product required", cfg.ID)
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = 0.1
	}
	if cfg.MaxChangeFraction == 0 {
		cfg.MaxChangeFraction = 0.2
	}
	if cfg.MinPrice == 0 {
		cfg.MinPrice = 10
	}
	if cfg.DefaultPrice == 0 {
		cfg.DefaultPrice = 100
	}
	products := append([]string(nil), cfg.Products...)
	sort.Strings(products)
	cfg.Products = products
	return &Market{cfg: cfg, rng: rng}, nil
}

func (m *Market) ID() string          { return m.cfg.ID }
func (m *Market) Kind() sim.AgentKind { return sim.KindMarket }

// Step applies the clearing rule per product: the relative price move is
// sensitivity times the supply/demand imbalance (normalized by the larger
// side), clamped, plus seeded noise, floored at MinPrice.
func (m *Market) Step(now time.Time, view *sim.WorldView) (sim.Proposals, error) {
	var props sim.Proposals
	for _, product := range m.cfg.Products {
		price := view.Price(product)
		if price <= 0 {
			price = m.cfg.DefaultPrice
		}
		demand := view.Aggregate("demand." + product)
		supply := view.Aggregate("supply." + product)

		var factor float64
		if denom := maxFloat(supply, demand); denom > 0 {
			factor = (demand - supply) / denom * m.cfg.Sensitivity
		}
		if factor > m.cfg.MaxChangeFraction {
			factor = m.cfg.MaxChangeFraction
		} else if factor < -m.cfg.MaxChangeFraction {
			factor = -m.cfg.MaxChangeFraction
		}
		if m.rng != nil && m.cfg.NoiseStdDev > 0 {
			factor += m.rng.NormFloat64() * m.cfg.NoiseStdDev
		}

		newPrice := price * (1 + factor)
		if newPrice < m.cfg.MinPrice {
			newPrice = m.cfg.MinPrice
		}
		props.Effects = append(props.Effects, sim.SetPrice(product, newPrice))
		if demandPerTick := m.cfg.DemandPerTick[product]; demandPerTick > 0 {
			props.Effects = append(props.Effects, sim.AddAggregate("demand."+product, demandPerTick))
		}
	}
	return props, nil
}

// HandleEvent applies external price shocks (PRICE_UPDATE events with
// {product: price} payloads). Other kinds are ignored with a warning.
func (m *Market) HandleEvent(now time.Time, ev sim.Event, view *sim.WorldView) (sim.Proposals, error) {
	var props sim.Proposals
	switch ev.Kind {
	case EventPriceUpdate:
		for _, product := range sortedKeys(ev.Payload) {
			props.Effects = append(props.Effects, sim.SetPrice(product, ev.Payload[product]))
		}
	default:
		logrus.Warnf("market %s: ignoring event kind %q", m.cfg.ID, ev.Kind)
	}
	return props, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
