package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/steel"
	"github.com/steelpath/steelpath/sim/worldgen"
)

var (
	// CLI flags for the generate command
	generateOutDir    string   // Directory for the generated CSV files
	generatePlants    int      // Number of plants to generate
	generateSuppliers int      // Number of suppliers to generate
	generateRegions   []string // Regions to spread the world over
	generateSeed      int64    // Seed for the generation RNG
)

// generateCmd writes a synthetic world to CSV files so a scenario can load
// it through input_data_dir, inspect it, or hand-edit it.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic world data as CSV input files",
	Run: func(cmd *cobra.Command, args []string) {
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(generateSeed))
		plants, suppliers, markets, err := worldgen.Generate(worldgen.SyntheticParams{
			NumberOfPlants:    generatePlants,
			NumberOfSuppliers: generateSuppliers,
			Regions:           generateRegions,
		}, rng.ForSubsystem(sim.SubsystemWorldgen))
		if err != nil {
			logrus.Fatalf("generating world: %v", err)
		}
		if err := writeWorldCSVs(generateOutDir, plants, suppliers, markets); err != nil {
			logrus.Fatalf("writing world data: %v", err)
		}
		logrus.Infof("Wrote %d plants, %d suppliers, %d market listings to %s",
			len(plants), len(suppliers), len(markets), generateOutDir)
	},
}

func writeWorldCSVs(dir string, plants []worldgen.PlantRecord, suppliers []worldgen.SupplierRecord, markets []worldgen.MarketRecord) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	plantRows := [][]string{{"plant_id", "name", "country", "region",
		"capacity_tonnes_per_year", "technology_mix", "efficiency_factor",
		"supplier_id", "storage_capacity_tonnes"}}
	for _, p := range plants {
		plantRows = append(plantRows, []string{
			p.PlantID, p.Name, p.Country, p.Region,
			fmt.Sprintf("%.0f", p.CapacityTonnesPerYear),
			formatTechnologyMix(p.TechnologyMix),
			fmt.Sprintf("%.4f", p.EfficiencyFactor),
			p.SupplierID,
			fmt.Sprintf("%.0f", p.StorageCapacityTonnes),
		})
	}
	if err := writeCSV(filepath.Join(dir, worldgen.PlantsFile), plantRows); err != nil {
		return err
	}

	supplierRows := [][]string{{"supplier_id", "name", "region", "materials",
		"transport_mode", "distance_km"}}
	for _, s := range suppliers {
		materials := make([]string, len(s.Materials))
		for i, m := range s.Materials {
			materials[i] = string(m)
		}
		supplierRows = append(supplierRows, []string{
			s.SupplierID, s.Name, s.Region,
			strings.Join(materials, ";"),
			s.TransportMode,
			fmt.Sprintf("%.1f", s.DistanceKm),
		})
	}
	if err := writeCSV(filepath.Join(dir, worldgen.SuppliersFile), supplierRows); err != nil {
		return err
	}

	marketRows := [][]string{{"market_id", "region", "product",
		"price_usd_per_tonne", "demand_tonnes_per_tick"}}
	for _, m := range markets {
		marketRows = append(marketRows, []string{
			m.MarketID, m.Region, m.Product,
			fmt.Sprintf("%.2f", m.PriceUSDPerTonne),
			fmt.Sprintf("%.2f", m.DemandTonnesPerTick),
		})
	}
	return writeCSV(filepath.Join(dir, worldgen.MarketsFile), marketRows)
}

// formatTechnologyMix renders a share map as "bf-bof:0.70;eaf:0.30" with
// technologies in stable order.
func formatTechnologyMix(mix map[steel.TechnologyType]float64) string {
	techs := make([]string, 0, len(mix))
	for t := range mix {
		techs = append(techs, string(t))
	}
	sort.Strings(techs)
	parts := make([]string, len(techs))
	for i, t := range techs {
		parts[i] = fmt.Sprintf("%s:%.2f", t, mix[steel.TechnologyType(t)])
	}
	return strings.Join(parts, ";")
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func init() {
	generateCmd.Flags().StringVar(&generateOutDir, "out", "data", "Directory for the generated CSV files")
	generateCmd.Flags().IntVar(&generatePlants, "plants", 5, "Number of plants to generate")
	generateCmd.Flags().IntVar(&generateSuppliers, "suppliers", 3, "Number of suppliers to generate")
	generateCmd.Flags().StringSliceVar(&generateRegions, "regions", nil, "Regions to spread the world over")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "Seed for the generation RNG")
	rootCmd.AddCommand(generateCmd)
}
