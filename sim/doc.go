// Package sim provides the core discrete-time simulation engine for SteelPath.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - clock.go: simulation time, step size, and end conditions
//   - event_queue.go: deterministic (time, priority, sequence) event ordering
//   - engine.go: the tick loop, effect application order, and the engine state machine
//
// # Architecture
//
// The sim package defines the engine contract; domain content lives in
// sub-packages:
//   - sim/steel/: production technology, cost, emission, finance, transport
//     and inventory computation
//   - sim/agents/: Plant, Market and Supplier agent implementations
//   - sim/worldgen/: input schemas, CSV loading and synthetic world generation
//
// Agents never mutate WorldState directly. Each tick they are handed a
// read-only WorldView and return Proposals (effects plus follow-up events);
// the engine applies all collected effects in a fixed, documented order once
// the proposal phase is complete. This split is what makes runs reproducible:
// within a tick, every agent observes the world exactly as it stood at tick
// start, regardless of what other agents propose.
//
// # Key Types
//
//   - Agent: the capability interface (Step, HandleEvent) all variants implement
//   - Effect: a proposed set/add/sub mutation of an aggregate, price or agent attribute
//   - Event: a scheduled action addressed to an agent by identifier
//   - Engine: drives the clock, drains due events, steps agents, applies effects
//     and records one Snapshot per tick
package sim
