package worldgen

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/agents"
	"github.com/steelpath/steelpath/sim/steel"
)

// initialStockDays is the raw material cover plants start with.
const initialStockDays = 30.0

// Build-time investment appraisal parameters.
const (
	appraisalHorizonYears = 20
	appraisalDiscountRate = 0.08
	defaultCarbonPriceUSD = 50.0
	appraisalNPVAttr      = "plan.switch_npv"
	appraisalPaybackAttr  = "plan.switch_payback_years"
	viableSwitchesKey     = "plants_with_viable_switch"
	appraisalTargetTech   = steel.TechHydrogenDRI
)

// BuildWorld assembles the engine's WorldState from validated records.
//
// All market records collapse into one clearing market agent: the price
// table is global (keyed by commodity), so exactly one agent manages each
// price; regional granularity stays in the data. Demand per product is the
// sum across regions, and the first listed price per product seeds the
// table.
//
// When market data carries prices, each plant also gets a build-time
// appraisal of switching its dominant route to hydrogen-based DRI at
// today's prices, recorded under "plan." attributes, with the count of
// plants whose switch has positive NPV in the "plants_with_viable_switch"
// aggregate.
func BuildWorld(cfg *sim.ScenarioConfig, plants []PlantRecord, suppliers []SupplierRecord, markets []MarketRecord, rng *sim.PartitionedRNG) (*sim.WorldState, error) {
	world := sim.NewWorldState()
	stepsPerYear := 365.0 / float64(cfg.TimeSettings.TimeStepDays)
	profiles := steel.DefaultProfiles()
	carbonPrice := cfg.SimulationParameters.CarbonPriceUSDPerTonne
	if carbonPrice == 0 {
		carbonPrice = defaultCarbonPriceUSD
	}
	costs := steel.CostCalculator{CarbonPricePerTonneCO2: carbonPrice}
	emissions := steel.NewEmissionCalculator(steel.DefaultEmissionFactors())

	var marketCfg agents.MarketConfig
	var prices map[string]float64
	if len(markets) > 0 {
		var err error
		marketCfg, prices, err = mergeMarkets(markets)
		if err != nil {
			return nil, err
		}
	}

	for _, rec := range suppliers {
		supplier, err := agents.NewSupplier(agents.SupplierConfig{
			ID:            rec.SupplierID,
			Name:          rec.Name,
			Region:        rec.Region,
			Materials:     rec.Materials,
			TransportMode: rec.TransportMode,
			DistanceKm:    rec.DistanceKm,
		}, nil)
		if err != nil {
			return nil, err
		}
		if err := world.AddAgent(supplier, nil); err != nil {
			return nil, err
		}
	}

	var viableSwitches float64
	for _, rec := range plants {
		plant, err := agents.NewPlant(agents.PlantConfig{
			ID:                    rec.PlantID,
			Name:                  rec.Name,
			Region:                rec.Region,
			CapacityTonnesPerYear: rec.CapacityTonnesPerYear,
			Efficiency:            rec.EfficiencyFactor,
			TechnologyMix:         rec.TechnologyMix,
			SupplierID:            rec.SupplierID,
			StepsPerYear:          stepsPerYear,
			StorageCapacityTonnes: rec.StorageCapacityTonnes,
		}, profiles, costs, emissions)
		if err != nil {
			return nil, err
		}
		attrs := initialPlantAttrs(rec, profiles)
		if len(prices) > 0 {
			planAttrs, viable := appraiseSwitch(rec, profiles, prices, costs)
			for k, v := range planAttrs {
				attrs[k] = v
			}
			if viable {
				viableSwitches++
			}
		}
		if err := world.AddAgent(plant, attrs); err != nil {
			return nil, err
		}
	}
	if len(plants) > 0 && len(prices) > 0 {
		world.SetAggregate(viableSwitchesKey, viableSwitches)
	}

	if len(markets) > 0 {
		market, err := agents.NewMarket(marketCfg, rng.ForSubsystem(sim.SubsystemMarket))
		if err != nil {
			return nil, err
		}
		if err := world.AddAgent(market, nil); err != nil {
			return nil, err
		}
		for product, price := range prices {
			world.SetPrice(product, price)
		}
	}
	return world, nil
}

// initialPlantAttrs computes the plant's starting attribute map: raw
// material stock covering initialStockDays of full production.
func initialPlantAttrs(rec PlantRecord, profiles map[steel.TechnologyType]steel.TechnologyProfile) map[string]float64 {
	efficiency := rec.EfficiencyFactor
	if efficiency == 0 {
		efficiency = 1.0
	}
	attrs := map[string]float64{}
	for tech, share := range rec.TechnologyMix {
		for m, perTonne := range profiles[tech].Inputs {
			daily := perTonne * rec.CapacityTonnesPerYear * share * efficiency / 365
			attrs["inventory."+string(m)] += daily * initialStockDays
		}
	}
	return attrs
}

// dominantTechnology returns the mix's highest-share route, breaking ties
// by name for determinism.
func dominantTechnology(mix map[steel.TechnologyType]float64) steel.TechnologyType {
	techs := make([]steel.TechnologyType, 0, len(mix))
	for tech := range mix {
		techs = append(techs, tech)
	}
	sort.Slice(techs, func(i, j int) bool { return techs[i] < techs[j] })
	var best steel.TechnologyType
	bestShare := -1.0
	for _, tech := range techs {
		if mix[tech] > bestShare {
			best, bestShare = tech, mix[tech]
		}
	}
	return best
}

// appraiseSwitch evaluates converting the plant's dominant route to the
// appraisal target at today's prices. Returns the resulting "plan."
// attributes and whether the switch has positive NPV; nil when the plant
// already runs the target route or a profile is missing.
func appraiseSwitch(rec PlantRecord, profiles map[steel.TechnologyType]steel.TechnologyProfile, prices map[string]float64, costs steel.CostCalculator) (map[string]float64, bool) {
	current := dominantTechnology(rec.TechnologyMix)
	if current == appraisalTargetTech {
		return nil, false
	}
	currentProfile, okCurrent := profiles[current]
	targetProfile, okTarget := profiles[appraisalTargetTech]
	if !okCurrent || !okTarget {
		return nil, false
	}

	materialPrices := make(map[steel.Material]float64, len(prices))
	for product, price := range prices {
		materialPrices[steel.Material(product)] = price
	}
	finance := steel.FinancialCalculator{DefaultDiscountRate: appraisalDiscountRate}
	appraisal := finance.AppraiseTechnologySwitch(currentProfile, targetProfile,
		rec.CapacityTonnesPerYear, materialPrices, prices["electricity"], costs, appraisalHorizonYears)

	attrs := map[string]float64{appraisalNPVAttr: appraisal.NPV}
	if appraisal.Recovered {
		attrs[appraisalPaybackAttr] = appraisal.PaybackYears
	}
	logrus.Debugf("plant %s: %s -> %s switch capex %.0f, annual savings %.0f, npv %.0f",
		rec.PlantID, current, appraisalTargetTech, appraisal.Capex, appraisal.AnnualSavings, appraisal.NPV)
	return attrs, appraisal.NPV > 0
}

// mergeMarkets collapses market records into one market config plus the
// initial price table. Prices are "first record wins" per product; demand
// sums across regions.
func mergeMarkets(markets []MarketRecord) (agents.MarketConfig, map[string]float64, error) {
	if len(markets) == 0 {
		return agents.MarketConfig{}, nil, fmt.Errorf("no market records")
	}
	prices := map[string]float64{}
	demand := map[string]float64{}
	seen := map[string]bool{}
	var products []string
	for _, rec := range markets {
		if !seen[rec.Product] {
			seen[rec.Product] = true
			products = append(products, rec.Product)
			prices[rec.Product] = rec.PriceUSDPerTonne
		}
		demand[rec.Product] += rec.DemandTonnesPerTick
	}
	sort.Strings(products)
	return agents.MarketConfig{
		ID:            markets[0].MarketID,
		Region:        "global",
		Products:      products,
		DemandPerTick: demand,
		NoiseStdDev:   0.01,
	}, prices, nil
}
