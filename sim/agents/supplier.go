package agents

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/steel"
)

// SupplierConfig parameterizes a supplier agent.
type SupplierConfig struct {
	ID            string
	Name          string
	Region        string
	Materials     []steel.Material // materials this supplier can deliver
	TransportMode string           // key into the transport mode table
	DistanceKm    float64          // distance to its customer plants
}

// Supplier is reactive: it does nothing during the step phase and responds
// to REPLENISH_REQUEST events by dispatching a shipment, that is, a
// MATERIAL_ARRIVAL event scheduled a transport lead time after dispatch,
// plus effects for the shipment's cost and emissions.
type Supplier struct {
	cfg      SupplierConfig
	modes    map[string]steel.TransportMode
	supplies map[steel.Material]bool
}

// NewSupplier creates a supplier agent. modes nil means the default
// transport mode table.
func NewSupplier(cfg SupplierConfig, modes map[string]steel.TransportMode) (*Supplier, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("supplier requires an identifier")
	}
	if modes == nil {
		modes = steel.DefaultTransportModes()
	}
	if _, ok := modes[cfg.TransportMode]; !ok {
		return nil, fmt.Errorf("supplier %s: unknown transport mode %q", cfg.ID, cfg.TransportMode)
	}
	if cfg.DistanceKm <= 0 {
		return nil, fmt.Errorf("supplier %s: distance must be positive", cfg.ID)
	}
	supplies := make(map[steel.Material]bool, len(cfg.Materials))
	for _, m := range cfg.Materials {
		supplies[m] = true
	}
	return &Supplier{cfg: cfg, modes: modes, supplies: supplies}, nil
}

func (s *Supplier) ID() string          { return s.cfg.ID }
func (s *Supplier) Kind() sim.AgentKind { return sim.KindSupplier }

// Step is a no-op: suppliers act only on replenishment requests.
func (s *Supplier) Step(now time.Time, view *sim.WorldView) (sim.Proposals, error) {
	return sim.Proposals{}, nil
}

// HandleEvent processes REPLENISH_REQUEST events. The arrival is scheduled
// at the dispatching tick's time plus the mode's lead time for the
// configured distance. A request is popped at or after its scheduled time,
// so basing the arrival on the request's own timestamp could place it
// before the queue's drain time and get it dropped; the dispatch time is
// the earliest instant a shipment can leave. Material cost is priced from
// the tick-start price table.
func (s *Supplier) HandleEvent(now time.Time, ev sim.Event, view *sim.WorldView) (sim.Proposals, error) {
	var props sim.Proposals
	if ev.Kind != EventReplenishRequest {
		logrus.Warnf("supplier %s: ignoring event kind %q", s.cfg.ID, ev.Kind)
		return props, nil
	}
	if ev.Source == "" {
		return props, fmt.Errorf("replenish request without source agent")
	}
	mode := s.modes[s.cfg.TransportMode]
	lead, ok := mode.LeadTime(s.cfg.DistanceKm)
	if !ok {
		lead = 24 * time.Hour
	}

	for _, key := range sortedKeys(ev.Payload) {
		material := steel.Material(key)
		qty := ev.Payload[key]
		if qty <= 0 {
			continue
		}
		if !s.supplies[material] {
			logrus.Warnf("supplier %s: cannot supply %s, request from %s dropped", s.cfg.ID, key, ev.Source)
			continue
		}
		materialCost := qty * view.Price(key)
		shippingCost := mode.TripCost(s.cfg.DistanceKm, qty)
		emissions := mode.TripEmissionsTonnesCO2e(s.cfg.DistanceKm, qty)

		props.Events = append(props.Events, sim.Event{
			Time:    now.Add(lead),
			Source:  s.cfg.ID,
			Target:  ev.Source,
			Kind:    EventMaterialArrival,
			Payload: map[string]float64{key: qty},
		})
		props.Effects = append(props.Effects,
			sim.AddAggregate("total_cost", materialCost+shippingCost),
			sim.AddAggregate("cumulative_emissions", emissions),
			sim.AddAggregate("transport_emissions", emissions),
			sim.AddAggregate("shipments_dispatched", 1),
		)
	}
	return props, nil
}
