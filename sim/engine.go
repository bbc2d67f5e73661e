package sim

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineState is the engine's lifecycle state.
type EngineState string

const (
	StateInitialized EngineState = "initialized"
	StateRunning     EngineState = "running"
	StateFinished    EngineState = "finished"
	StateFailed      EngineState = "failed"
)

// ErrorPolicy controls how the engine reacts to an agent computation error.
type ErrorPolicy string

const (
	// ErrorPolicyFail (default) transitions the engine to Failed on the
	// first agent error. Silently skipping an agent could silently corrupt
	// downstream economic aggregates.
	ErrorPolicyFail ErrorPolicy = "fail"
	// ErrorPolicySkip discards the offending agent's proposals for the
	// tick, logs the error, and continues.
	ErrorPolicySkip ErrorPolicy = "skip-and-log"
)

// Engine drives the simulation: it advances the clock, pops due events,
// dispatches to agents, applies committed effects to the WorldState, and
// records one Snapshot per tick.
//
// Scheduling is single-threaded, synchronous and cooperative. One tick
// completes fully (propose, apply, record, advance) before the next begins.
type Engine struct {
	clock  *SimulationClock
	queue  *EventQueue
	world  *WorldState
	result *Result
	state  EngineState
	policy ErrorPolicy
}

// NewEngine creates an engine over a populated world. The clock's start
// time becomes the event queue's initial drain time. policy "" defaults to
// fail-fast.
func NewEngine(scenario string, clock *SimulationClock, world *WorldState, policy ErrorPolicy) *Engine {
	if policy == "" {
		policy = ErrorPolicyFail
	}
	return &Engine{
		clock:  clock,
		queue:  NewEventQueue(clock.Now()),
		world:  world,
		result: newResult(scenario),
		state:  StateInitialized,
		policy: policy,
	}
}

// State returns the engine's lifecycle state.
func (e *Engine) State() EngineState { return e.state }

// World exposes the engine-owned world state for population and inspection.
func (e *Engine) World() *WorldState { return e.world }

// Schedule inserts a host- or engine-originated event before or during a
// run. Past-time events are rejected with *InvalidScheduleError.
func (e *Engine) Schedule(ev Event) error {
	return e.queue.Schedule(ev)
}

// proposalGroup keeps collected effects attached to the proposing agent so
// the apply phase can order groups by agent identifier.
type proposalGroup struct {
	agentID string
	effects []Effect
}

// Run executes ticks until the clock's end condition holds or an agent
// error escalates under the fail-fast policy. The (possibly partial)
// Result is returned in both cases; on failure it carries the failure
// marker and the error is returned alongside it.
func (e *Engine) Run() (*Result, error) {
	if e.state != StateInitialized {
		return e.result, fmt.Errorf("engine already ran (state %s)", e.state)
	}
	e.state = StateRunning
	for {
		if e.clock.IsFinished() {
			e.state = StateFinished
			break
		}
		now := e.clock.Now()
		step := e.clock.StepCount()
		logrus.Infof("[tick %04d] %s", step, now.Format("2006-01-02"))

		if err := e.tick(now, step); err != nil {
			e.state = StateFailed
			e.result.Failed = true
			e.result.FailureReason = err.Error()
			logrus.Errorf("[tick %04d] simulation failed: %v", step, err)
			return e.result, err
		}

		e.result.appendSnapshot(Snapshot{
			Time:       now,
			Step:       step,
			Aggregates: e.world.snapshotAggregates(),
			Prices:     e.world.snapshotPrices(),
		})

		if _, err := e.clock.Advance(); err != nil {
			// IsFinished is checked at the top of the loop, so this only
			// fires if the end condition became true mid-tick.
			e.state = StateFinished
			break
		}
	}
	logrus.Infof("[tick %04d] simulation ended at %s", e.clock.StepCount(), e.clock.Now().Format("2006-01-02"))
	return e.result, nil
}

// tick runs one iteration: collect proposals from due events and agent
// steps, then apply effects in the documented order and schedule follow-up
// events. Reproducibility contract for the apply phase:
//
//  1. event-driven effects before step-driven effects,
//  2. within each group, proposing-agent identifier ascending,
//  3. within one agent's group, proposal order.
func (e *Engine) tick(now time.Time, step int) error {
	view := e.world.View()

	// Dispatch due events. PopDue yields (time, priority, sequence) order;
	// events for inactive or unknown agents execute as logged no-ops.
	var eventGroups []proposalGroup
	var followUps []Event
	for _, ev := range e.queue.PopDue(now) {
		agent, ok := e.world.Agent(ev.Target)
		if !ok {
			logrus.Warnf("[tick %04d] event %q targets unknown agent %s", step, ev.Kind, ev.Target)
			e.result.appendLog(LogRecord{Step: step, Time: now, Kind: LogUnknownTarget, AgentID: ev.Target, Detail: ev.Kind})
			continue
		}
		if !e.world.IsActive(ev.Target) {
			logrus.Infof("[tick %04d] event %q for inactive agent %s is a no-op", step, ev.Kind, ev.Target)
			e.result.appendLog(LogRecord{Step: step, Time: now, Kind: LogInactiveTarget, AgentID: ev.Target, Detail: ev.Kind})
			continue
		}
		props, err := agent.HandleEvent(now, ev, view)
		if err != nil {
			if handled := e.handleAgentError(ev.Target, "handle_event", step, now, err); handled != nil {
				return handled
			}
			continue
		}
		eventGroups = append(eventGroups, proposalGroup{agentID: ev.Target, effects: props.Effects})
		followUps = append(followUps, props.Events...)
	}

	// Step active agents in ascending identifier order.
	var stepGroups []proposalGroup
	for _, id := range e.world.AgentIDs() {
		if !e.world.IsActive(id) {
			continue
		}
		agent, _ := e.world.Agent(id)
		props, err := agent.Step(now, view)
		if err != nil {
			if handled := e.handleAgentError(id, "step", step, now, err); handled != nil {
				return handled
			}
			continue
		}
		stepGroups = append(stepGroups, proposalGroup{agentID: id, effects: props.Effects})
		followUps = append(followUps, props.Events...)
	}

	// Apply phase. stepGroups is already in identifier order because the
	// step loop iterates sorted identifiers; eventGroups is re-ordered
	// stably so same-agent event effects keep their dispatch order.
	sort.SliceStable(eventGroups, func(i, j int) bool {
		return eventGroups[i].agentID < eventGroups[j].agentID
	})
	e.applyGroups(eventGroups, step, now)
	e.applyGroups(stepGroups, step, now)

	// Schedule follow-up events; past-time events are dropped and logged,
	// the run continues.
	for _, ev := range followUps {
		if err := e.queue.Schedule(ev); err != nil {
			logrus.Warnf("[tick %04d] dropping event: %v", step, err)
			e.result.appendLog(LogRecord{Step: step, Time: now, Kind: LogDroppedEvent, AgentID: ev.Source, Detail: err.Error()})
		}
	}
	return nil
}

func (e *Engine) applyGroups(groups []proposalGroup, step int, now time.Time) {
	for _, g := range groups {
		for _, eff := range g.effects {
			if err := eff.apply(e.world); err != nil {
				logrus.Warnf("[tick %04d] effect from %s not applied: %v", step, g.agentID, err)
				e.result.appendLog(LogRecord{Step: step, Time: now, Kind: LogUnappliedEffect, AgentID: g.agentID, Detail: err.Error()})
			}
		}
	}
}

// handleAgentError returns a non-nil error when the failure must escalate.
func (e *Engine) handleAgentError(agentID, phase string, step int, now time.Time, err error) error {
	wrapped := &AgentComputationError{AgentID: agentID, Phase: phase, Err: err}
	if e.policy == ErrorPolicySkip {
		logrus.Warnf("[tick %04d] %v (policy %s, continuing)", step, wrapped, e.policy)
		e.result.appendLog(LogRecord{Step: step, Time: now, Kind: LogSkippedAgent, AgentID: agentID, Detail: wrapped.Error()})
		return nil
	}
	return wrapped
}
