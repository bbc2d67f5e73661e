package sim

import (
	"fmt"
	"sort"
)

type agentEntry struct {
	agent  Agent
	active bool
	attrs  map[string]float64
}

// WorldState is the engine-owned shared state: the agent registry, global
// aggregates, and the commodity price table. Agents never hold a reference
// to it; during a tick they receive a read-only WorldView, and all mutation
// flows through committed Effects applied by the Engine.
type WorldState struct {
	agents     map[string]*agentEntry
	aggregates map[string]float64
	prices     map[string]float64
}

// NewWorldState creates an empty world.
func NewWorldState() *WorldState {
	return &WorldState{
		agents:     make(map[string]*agentEntry),
		aggregates: make(map[string]float64),
		prices:     make(map[string]float64),
	}
}

// AddAgent registers an agent with its initial attributes. Identifiers are
// unique; registering a duplicate is an error. attrs may be nil.
func (w *WorldState) AddAgent(a Agent, attrs map[string]float64) error {
	if a == nil || a.ID() == "" {
		return fmt.Errorf("agent must have a non-empty identifier")
	}
	if _, ok := w.agents[a.ID()]; ok {
		return fmt.Errorf("duplicate agent identifier %q", a.ID())
	}
	copied := make(map[string]float64, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	w.agents[a.ID()] = &agentEntry{agent: a, active: true, attrs: copied}
	return nil
}

// Agent looks up a registered agent by identifier.
func (w *WorldState) Agent(id string) (Agent, bool) {
	entry, ok := w.agents[id]
	if !ok {
		return nil, false
	}
	return entry.agent, true
}

// IsActive reports whether the agent exists and has not been deactivated.
func (w *WorldState) IsActive(id string) bool {
	entry, ok := w.agents[id]
	return ok && entry.active
}

// Deactivate soft-deletes an agent: it is skipped by the step phase and its
// remaining queued events execute as logged no-ops. Agents are never
// physically removed mid-run, so historical event references stay valid.
// Returns false if the agent is unknown.
func (w *WorldState) Deactivate(id string) bool {
	entry, ok := w.agents[id]
	if !ok {
		return false
	}
	entry.active = false
	return true
}

// AgentIDs returns all registered identifiers in ascending order. This is
// the stable iteration order for the step phase and for effect application.
func (w *WorldState) AgentIDs() []string {
	ids := make([]string, 0, len(w.agents))
	for id := range w.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetAggregate initializes or overwrites a global aggregate. Intended for
// world population; during a run aggregates change only via effects.
func (w *WorldState) SetAggregate(key string, v float64) { w.aggregates[key] = v }

// Aggregate returns the value of a global aggregate (zero if unset).
func (w *WorldState) Aggregate(key string) float64 { return w.aggregates[key] }

// SetPrice initializes or overwrites a commodity price.
func (w *WorldState) SetPrice(commodity string, v float64) { w.prices[commodity] = v }

// Price returns the current price of a commodity (zero if unlisted).
func (w *WorldState) Price(commodity string) float64 { return w.prices[commodity] }

// AgentAttr returns an agent attribute. The second return value is false
// when the agent is unknown (an unset attribute on a known agent reads as 0).
func (w *WorldState) AgentAttr(id, key string) (float64, bool) {
	entry, ok := w.agents[id]
	if !ok {
		return 0, false
	}
	return entry.attrs[key], true
}

// snapshotAggregates copies the aggregate table for a Snapshot.
func (w *WorldState) snapshotAggregates() map[string]float64 {
	out := make(map[string]float64, len(w.aggregates))
	for k, v := range w.aggregates {
		out[k] = v
	}
	return out
}

// snapshotPrices copies the price table for a Snapshot.
func (w *WorldState) snapshotPrices() map[string]float64 {
	out := make(map[string]float64, len(w.prices))
	for k, v := range w.prices {
		out[k] = v
	}
	return out
}

// View returns a read-only view of the world. The Engine hands this to
// agents during the proposal phase; because effects are applied only after
// all proposals are collected, every read through the view observes the
// world as it stood at tick start.
func (w *WorldState) View() *WorldView { return &WorldView{w: w} }

// WorldView is the read-only access agents get during proposal. It
// intentionally exposes no mutating methods.
type WorldView struct {
	w *WorldState
}

// Aggregate returns a global aggregate value (zero if unset).
func (v *WorldView) Aggregate(key string) float64 { return v.w.aggregates[key] }

// Price returns a commodity price (zero if unlisted).
func (v *WorldView) Price(commodity string) float64 { return v.w.prices[commodity] }

// AgentAttr returns an attribute of any agent by identifier.
func (v *WorldView) AgentAttr(id, key string) (float64, bool) { return v.w.AgentAttr(id, key) }

// HasAgent reports whether the identifier is registered.
func (v *WorldView) HasAgent(id string) bool {
	_, ok := v.w.agents[id]
	return ok
}

// IsActive reports whether the agent exists and is active.
func (v *WorldView) IsActive(id string) bool { return v.w.IsActive(id) }

// AgentIDs returns all registered identifiers in ascending order.
func (v *WorldView) AgentIDs() []string { return v.w.AgentIDs() }
