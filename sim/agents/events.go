// Package agents implements the Plant, Market and Supplier agent variants.
// Each variant only computes effect proposals; all state mutation and event
// delivery is the engine's business.
package agents

import "sort"

// Event kinds exchanged between the built-in agent variants. Payloads are
// keyed by commodity name with tonne (or USD-per-tonne) values.
const (
	// EventReplenishRequest: a plant asks its supplier for raw material.
	EventReplenishRequest = "REPLENISH_REQUEST"
	// EventMaterialArrival: a shipment reaches the target plant.
	EventMaterialArrival = "MATERIAL_ARRIVAL"
	// EventPriceUpdate: an external price shock applied by a market.
	EventPriceUpdate = "PRICE_UPDATE"
)

// sortedKeys returns payload keys in ascending order so that proposal
// order never depends on map iteration.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
