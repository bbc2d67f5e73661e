package sim

import "time"

// AgentKind tags the agent variants the engine knows how to report on.
// The dispatch loop itself is ignorant of concrete types: all variants are
// driven through the same Agent interface.
type AgentKind string

const (
	KindPlant    AgentKind = "plant"
	KindMarket   AgentKind = "market"
	KindSupplier AgentKind = "supplier"
)

// Proposals is what an agent returns from Step or HandleEvent: effects to
// apply to the world and follow-up events to schedule. Nothing in a
// Proposals value has happened yet; the engine commits effects in a fixed
// order and schedules events through the queue (dropping any that target
// the past).
type Proposals struct {
	Effects []Effect
	Events  []Event
}

// Merge appends another set of proposals.
func (p *Proposals) Merge(other Proposals) {
	p.Effects = append(p.Effects, other.Effects...)
	p.Events = append(p.Events, other.Events...)
}

// Agent is the capability interface all simulation participants implement.
//
// Step is invoked once per tick per active agent, in ascending identifier
// order. HandleEvent is invoked when a scheduled event addressed to the
// agent becomes due; now is the dispatching tick's time, which is at or
// after ev.Time, and follow-up events must be scheduled relative to now
// (scheduling relative to ev.Time can land in the past once the queue has
// drained up to now). Both receive a read-only view of the world as it
// stood at tick start and must not retain the view beyond the call.
type Agent interface {
	ID() string
	Kind() AgentKind
	Step(now time.Time, view *WorldView) (Proposals, error)
	HandleEvent(now time.Time, ev Event, view *WorldView) (Proposals, error)
}
