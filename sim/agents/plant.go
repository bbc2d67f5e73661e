package agents

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/steel"
)

// Attribute keys a plant reads and proposes effects against. Raw material
// stock levels live under "inventory.<material>", outstanding orders under
// "on_order.<material>", finished goods under "inventory.steel".
func inventoryAttr(m steel.Material) string { return "inventory." + string(m) }
func onOrderAttr(m steel.Material) string   { return "on_order." + string(m) }

const steelInventoryAttr = "inventory.steel"

// PlantConfig parameterizes a steel plant agent.
type PlantConfig struct {
	ID                    string
	Name                  string
	Region                string
	CapacityTonnesPerYear float64
	Efficiency            float64 // overall plant efficiency factor
	TechnologyMix         map[steel.TechnologyType]float64
	SupplierID            string
	StepsPerYear          float64 // ticks per simulated year, from the scenario clock
	ReorderDays           float64 // stock cover (in days of full production) that triggers replenishment
	OrderDays             float64 // days of cover ordered per replenishment
	StorageCapacityTonnes float64 // per-material storage cap, 0 = unconstrained
	HoldingCostPerTonneYr float64 // carrying cost of stock, USD per tonne per year
}

// Plant produces crude steel each tick according to its technology mix,
// constrained by raw material stock. It proposes production, cost and
// emission effects, requests replenishment from its supplier when stock
// runs low, and books material arrivals into inventory.
type Plant struct {
	cfg       PlantConfig
	profiles  map[steel.TechnologyType]steel.TechnologyProfile
	costs     steel.CostCalculator
	emissions steel.EmissionCalculator
}

// NewPlant creates a plant agent. profiles nil means the default
// technology table; the technology mix must reference known technologies
// and sum to approximately 1.
func NewPlant(cfg PlantConfig, profiles map[steel.TechnologyType]steel.TechnologyProfile, costs steel.CostCalculator, emissions steel.EmissionCalculator) (*Plant, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("plant requires an identifier")
	}
	if cfg.CapacityTonnesPerYear <= 0 {
		return nil, fmt.Errorf("plant %s: capacity must be positive", cfg.ID)
	}
	if cfg.StepsPerYear <= 0 {
		return nil, fmt.Errorf("plant %s: steps per year must be positive", cfg.ID)
	}
	if profiles == nil {
		profiles = steel.DefaultProfiles()
	}
	var mixSum float64
	for tech, share := range cfg.TechnologyMix {
		if _, ok := profiles[tech]; !ok {
			return nil, fmt.Errorf("plant %s: unknown technology %q", cfg.ID, tech)
		}
		if share < 0 || share > 1 {
			return nil, fmt.Errorf("plant %s: technology share for %q out of range", cfg.ID, tech)
		}
		mixSum += share
	}
	if mixSum < 0.999 || mixSum > 1.001 {
		return nil, fmt.Errorf("plant %s: technology mix shares must sum to 1, got %.3f", cfg.ID, mixSum)
	}
	if cfg.Efficiency == 0 {
		cfg.Efficiency = 1.0
	}
	if cfg.ReorderDays == 0 {
		cfg.ReorderDays = 14
	}
	if cfg.OrderDays == 0 {
		cfg.OrderDays = 30
	}
	if cfg.HoldingCostPerTonneYr == 0 {
		cfg.HoldingCostPerTonneYr = 5
	}
	return &Plant{cfg: cfg, profiles: profiles, costs: costs, emissions: emissions}, nil
}

func (p *Plant) ID() string          { return p.cfg.ID }
func (p *Plant) Kind() sim.AgentKind { return sim.KindPlant }

// technologies returns the mix's technology types in stable order.
func (p *Plant) technologies() []steel.TechnologyType {
	techs := make([]steel.TechnologyType, 0, len(p.cfg.TechnologyMix))
	for tech := range p.cfg.TechnologyMix {
		techs = append(techs, tech)
	}
	sort.Slice(techs, func(i, j int) bool { return techs[i] < techs[j] })
	return techs
}

// targetPerTick is the plant's unconstrained production per tick.
func (p *Plant) targetPerTick() float64 {
	return p.cfg.CapacityTonnesPerYear / p.cfg.StepsPerYear * p.cfg.Efficiency
}

// dailyRequirement returns tonnes of material needed per day at full
// production, used for reorder points.
func (p *Plant) dailyRequirement(m steel.Material) float64 {
	perYear := 0.0
	for tech, share := range p.cfg.TechnologyMix {
		perYear += p.profiles[tech].Inputs[m] * p.cfg.CapacityTonnesPerYear * share * p.cfg.Efficiency
	}
	return perYear / 365
}

// materials returns every raw material the mix consumes, in stable order.
func (p *Plant) materials() []steel.Material {
	seen := map[steel.Material]bool{}
	for _, tech := range p.technologies() {
		for m := range p.profiles[tech].Inputs {
			seen[m] = true
		}
	}
	out := make([]steel.Material, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Step produces steel for one tick. Production per technology is scaled
// down when raw material stock cannot cover the full target, so inventory
// attributes never go negative. Carrying the tick-start stock accrues a
// holding cost whether or not anything is produced.
func (p *Plant) Step(now time.Time, view *sim.WorldView) (sim.Proposals, error) {
	var props sim.Proposals

	// Stock tracked locally while allocating across technologies; all
	// reads are tick-start values from the view.
	stocks := map[steel.Material]*steel.Inventory{}
	for _, m := range p.materials() {
		level, _ := view.AgentAttr(p.cfg.ID, inventoryAttr(m))
		stocks[m] = &steel.Inventory{
			Item:                    string(m),
			CapacityTonnes:          p.cfg.StorageCapacityTonnes,
			LevelTonnes:             level,
			HoldingCostPerTonneYear: p.cfg.HoldingCostPerTonneYr,
		}
	}

	yearFraction := 1 / p.cfg.StepsPerYear
	var holding float64
	for _, m := range p.materials() {
		holding += stocks[m].HoldingCost(yearFraction)
	}
	steelLevel, _ := view.AgentAttr(p.cfg.ID, steelInventoryAttr)
	finished := steel.Inventory{Item: "steel", LevelTonnes: steelLevel, HoldingCostPerTonneYear: p.cfg.HoldingCostPerTonneYr}
	holding += finished.HoldingCost(yearFraction)

	target := p.targetPerTick()
	consumedTotal := map[steel.Material]float64{}
	var produced, opex, carbonCost float64
	var emitted steel.EmissionBreakdown

	materialPrices := map[steel.Material]float64{}
	for _, m := range p.materials() {
		materialPrices[m] = view.Price(string(m))
	}
	energyPrice := view.Price("electricity")

	for _, tech := range p.technologies() {
		profile := p.profiles[tech]
		tonnes := target * p.cfg.TechnologyMix[tech]

		// Scale down to the most binding material constraint.
		for m, perTonne := range profile.Inputs {
			if perTonne <= 0 {
				continue
			}
			if feasible := stocks[m].LevelTonnes / perTonne; feasible < tonnes {
				tonnes = feasible
			}
		}
		if tonnes <= 0 {
			continue
		}

		consumed := map[steel.Material]float64{}
		for m, perTonne := range profile.Inputs {
			qty := stocks[m].Remove(perTonne * tonnes)
			consumed[m] = qty
			consumedTotal[m] += qty
		}

		breakdown := p.emissions.ProductionEmissions(profile, tonnes, consumed)
		emitted.Scope1 += breakdown.Scope1
		emitted.Scope2 += breakdown.Scope2
		emitted.Scope3 += breakdown.Scope3

		rawCost, unpriced := p.costs.RawMaterialCost(consumed, materialPrices)
		if len(unpriced) > 0 {
			logrus.Warnf("plant %s: no price listed for %v, excluded from cost", p.cfg.ID, unpriced)
		}
		opex += p.costs.OperationalCost(profile, tonnes, rawCost, energyPrice)
		produced += tonnes
	}
	carbonCost = p.costs.CarbonCost(emitted.Total())

	if holding > 0 {
		props.Effects = append(props.Effects, sim.AddAggregate("total_cost", holding))
	}
	if produced > 0 {
		props.Effects = append(props.Effects,
			sim.AddAttr(p.cfg.ID, steelInventoryAttr, produced),
			sim.AddAggregate("cumulative_output", produced),
			sim.AddAggregate("supply.steel", produced),
			sim.AddAggregate("cumulative_emissions", emitted.Total()),
			sim.AddAggregate("emissions_scope1", emitted.Scope1),
			sim.AddAggregate("emissions_scope2", emitted.Scope2),
			sim.AddAggregate("emissions_scope3", emitted.Scope3),
			sim.AddAggregate("total_cost", opex+carbonCost),
			sim.AddAggregate("total_revenue", produced*view.Price("steel")),
		)
		for _, m := range p.materials() {
			if qty := consumedTotal[m]; qty > 0 {
				props.Effects = append(props.Effects, sim.SubAttr(p.cfg.ID, inventoryAttr(m), qty))
			}
		}
	}

	// Replenishment: order when projected stock falls below the reorder
	// cover and nothing is already on order.
	if p.cfg.SupplierID != "" {
		for _, m := range p.materials() {
			daily := p.dailyRequirement(m)
			if daily <= 0 {
				continue
			}
			onOrder, _ := view.AgentAttr(p.cfg.ID, onOrderAttr(m))
			projected := stocks[m].LevelTonnes
			if projected < daily*p.cfg.ReorderDays && onOrder <= 0 {
				orderQty := daily * p.cfg.OrderDays
				props.Events = append(props.Events, sim.Event{
					Time:    now,
					Source:  p.cfg.ID,
					Target:  p.cfg.SupplierID,
					Kind:    EventReplenishRequest,
					Payload: map[string]float64{string(m): orderQty},
				})
				props.Effects = append(props.Effects, sim.AddAttr(p.cfg.ID, onOrderAttr(m), orderQty))
			}
		}
	}
	return props, nil
}

// HandleEvent books material arrivals into inventory, clamped to storage
// capacity. Other event kinds are ignored with a warning.
func (p *Plant) HandleEvent(now time.Time, ev sim.Event, view *sim.WorldView) (sim.Proposals, error) {
	var props sim.Proposals
	switch ev.Kind {
	case EventMaterialArrival:
		for _, key := range sortedKeys(ev.Payload) {
			qty := ev.Payload[key]
			m := steel.Material(key)
			level, _ := view.AgentAttr(p.cfg.ID, inventoryAttr(m))
			inv := steel.Inventory{Item: key, CapacityTonnes: p.cfg.StorageCapacityTonnes, LevelTonnes: level}
			applied := inv.Add(qty)
			if applied < qty {
				logrus.Warnf("plant %s: storage full, %.1f t of %s discarded", p.cfg.ID, qty-applied, key)
			}
			if applied > 0 {
				props.Effects = append(props.Effects, sim.AddAttr(p.cfg.ID, inventoryAttr(m), applied))
			}
			props.Effects = append(props.Effects, sim.SubAttr(p.cfg.ID, onOrderAttr(m), qty))
		}
	default:
		logrus.Warnf("plant %s: ignoring event kind %q", p.cfg.ID, ev.Kind)
	}
	return props, nil
}
