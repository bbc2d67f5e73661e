package worldgen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/steelpath/steelpath/sim/steel"
)

// Canonical input file names inside a scenario's input data directory.
const (
	PlantsFile    = "steel_plants.csv"
	SuppliersFile = "suppliers.csv"
	MarketsFile   = "market_data.csv"
)

// readCSV reads a header-keyed CSV file into one map per row.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[strings.TrimSpace(col)] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseFloatField(rec map[string]string, key string) (float64, error) {
	raw := rec[key]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return v, nil
}

// parseTechnologyMix parses "bf-bof:0.7;eaf:0.3" into a share map.
func parseTechnologyMix(raw string) (map[steel.TechnologyType]float64, error) {
	mix := map[steel.TechnologyType]float64{}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed technology mix entry %q", part)
		}
		share, err := strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("technology share in %q: %w", part, err)
		}
		mix[steel.TechnologyType(strings.TrimSpace(kv[0]))] = share
	}
	return mix, nil
}

// LoadPlants reads and validates steel plant records from a CSV file.
// Invalid rows abort the load: a partially validated world is worse than
// a failed run.
func LoadPlants(path string) ([]PlantRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	plants := make([]PlantRecord, 0, len(rows))
	for i, rec := range rows {
		capacity, err := parseFloatField(rec, "capacity_tonnes_per_year")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		efficiency, err := parseFloatField(rec, "efficiency_factor")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		storage, err := parseFloatField(rec, "storage_capacity_tonnes")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		mix, err := parseTechnologyMix(rec["technology_mix"])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		plant := PlantRecord{
			PlantID:               rec["plant_id"],
			Name:                  rec["name"],
			Country:               rec["country"],
			Region:                rec["region"],
			CapacityTonnesPerYear: capacity,
			TechnologyMix:         mix,
			EfficiencyFactor:      efficiency,
			SupplierID:            rec["supplier_id"],
			StorageCapacityTonnes: storage,
		}
		if err := plant.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		plants = append(plants, plant)
	}
	logrus.Infof("loaded %d plant records from %s", len(plants), path)
	return plants, nil
}

// LoadSuppliers reads and validates supplier records from a CSV file.
func LoadSuppliers(path string) ([]SupplierRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	suppliers := make([]SupplierRecord, 0, len(rows))
	for i, rec := range rows {
		distance, err := parseFloatField(rec, "distance_km")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		var materials []steel.Material
		for _, part := range strings.Split(rec["materials"], ";") {
			part = strings.TrimSpace(part)
			if part != "" {
				materials = append(materials, steel.Material(part))
			}
		}
		supplier := SupplierRecord{
			SupplierID:    rec["supplier_id"],
			Name:          rec["name"],
			Region:        rec["region"],
			Materials:     materials,
			TransportMode: rec["transport_mode"],
			DistanceKm:    distance,
		}
		if err := supplier.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		suppliers = append(suppliers, supplier)
	}
	logrus.Infof("loaded %d supplier records from %s", len(suppliers), path)
	return suppliers, nil
}

// LoadMarkets reads and validates market data records from a CSV file.
func LoadMarkets(path string) ([]MarketRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	markets := make([]MarketRecord, 0, len(rows))
	for i, rec := range rows {
		price, err := parseFloatField(rec, "price_usd_per_tonne")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		demand, err := parseFloatField(rec, "demand_tonnes_per_tick")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		market := MarketRecord{
			MarketID:            rec["market_id"],
			Region:              rec["region"],
			Product:             rec["product"],
			PriceUSDPerTonne:    price,
			DemandTonnesPerTick: demand,
		}
		if err := market.Validate(); err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		markets = append(markets, market)
	}
	logrus.Infof("loaded %d market records from %s", len(markets), path)
	return markets, nil
}

// LoadAll loads all three record sets from an input data directory.
func LoadAll(dir string) ([]PlantRecord, []SupplierRecord, []MarketRecord, error) {
	plants, err := LoadPlants(filepath.Join(dir, PlantsFile))
	if err != nil {
		return nil, nil, nil, err
	}
	suppliers, err := LoadSuppliers(filepath.Join(dir, SuppliersFile))
	if err != nil {
		return nil, nil, nil, err
	}
	markets, err := LoadMarkets(filepath.Join(dir, MarketsFile))
	if err != nil {
		return nil, nil, nil, err
	}
	return plants, suppliers, markets, nil
}
