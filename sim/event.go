package sim

import "time"

// Event is a scheduled action addressed to an agent. Agents are referenced
// by identifier only (never by pointer), so an event outliving its source
// or target agent is harmless: the engine resolves identifiers at dispatch
// time and executes events for deactivated agents as logged no-ops.
type Event struct {
	// Time is the simulation instant at which the event becomes due.
	// It must not precede the time at which the event was scheduled.
	Time time.Time
	// Priority breaks ties between events due at the same instant;
	// lower values execute earlier.
	Priority int
	// Source is the identifier of the originating agent ("" for
	// engine- or host-scheduled events).
	Source string
	// Target is the identifier of the agent whose HandleEvent is invoked.
	Target string
	// Kind names the action, e.g. "MATERIAL_ARRIVAL" or "PRICE_UPDATE".
	Kind string
	// Payload carries quantities keyed by commodity or parameter name.
	Payload map[string]float64

	// seq is the insertion order assigned by the queue; it is the final
	// tie-break that makes execution order fully deterministic.
	seq uint64
}

// Seq returns the insertion sequence number assigned when the event was
// scheduled. Zero for events that never entered a queue.
func (e Event) Seq() uint64 { return e.seq }

// Event kinds used by the built-in agent variants live with those agents;
// the engine treats Kind as opaque.
