package sim

import "fmt"

// EffectScope identifies which part of the WorldState an effect targets.
type EffectScope string

const (
	// ScopeAggregate targets a global aggregate (e.g. "cumulative_emissions").
	ScopeAggregate EffectScope = "aggregate"
	// ScopePrice targets an entry in the commodity price table.
	ScopePrice EffectScope = "price"
	// ScopeAgent targets an attribute of a single agent, addressed by AgentID.
	ScopeAgent EffectScope = "agent"
)

// EffectOp is the mutation operation an effect applies.
type EffectOp string

const (
	OpSet EffectOp = "set"
	OpAdd EffectOp = "add"
	OpSub EffectOp = "sub"
)

// Effect is a proposed, not-yet-applied mutation of WorldState. Effects are
// the only sanctioned way to mutate the world: agents propose them, and the
// Engine applies them in a fixed order once the proposal phase of a tick is
// complete. This indirection is what guarantees that no agent observes
// another agent's uncommitted mutation within the same tick.
type Effect struct {
	Scope   EffectScope
	AgentID string // required for ScopeAgent, ignored otherwise
	Key     string // aggregate name, commodity name, or attribute name
	Op      EffectOp
	Value   float64
}

// AddAggregate is shorthand for an additive global-aggregate effect.
func AddAggregate(key string, v float64) Effect {
	return Effect{Scope: ScopeAggregate, Key: key, Op: OpAdd, Value: v}
}

// SetPrice is shorthand for a price-table set effect.
func SetPrice(commodity string, v float64) Effect {
	return Effect{Scope: ScopePrice, Key: commodity, Op: OpSet, Value: v}
}

// AddAttr is shorthand for an additive agent-attribute effect.
func AddAttr(agentID, key string, v float64) Effect {
	return Effect{Scope: ScopeAgent, AgentID: agentID, Key: key, Op: OpAdd, Value: v}
}

// SubAttr is shorthand for a subtractive agent-attribute effect.
func SubAttr(agentID, key string, v float64) Effect {
	return Effect{Scope: ScopeAgent, AgentID: agentID, Key: key, Op: OpSub, Value: v}
}

func applyOp(current float64, op EffectOp, v float64) (float64, error) {
	switch op {
	case OpSet:
		return v, nil
	case OpAdd:
		return current + v, nil
	case OpSub:
		return current - v, nil
	default:
		return current, fmt.Errorf("unknown effect op %q", op)
	}
}

// apply mutates the world. Only the Engine calls this.
func (e Effect) apply(w *WorldState) error {
	switch e.Scope {
	case ScopeAggregate:
		next, err := applyOp(w.aggregates[e.Key], e.Op, e.Value)
		if err != nil {
			return err
		}
		w.aggregates[e.Key] = next
	case ScopePrice:
		next, err := applyOp(w.prices[e.Key], e.Op, e.Value)
		if err != nil {
			return err
		}
		w.prices[e.Key] = next
	case ScopeAgent:
		entry, ok := w.agents[e.AgentID]
		if !ok {
			return fmt.Errorf("effect targets unknown agent %q", e.AgentID)
		}
		next, err := applyOp(entry.attrs[e.Key], e.Op, e.Value)
		if err != nil {
			return err
		}
		entry.attrs[e.Key] = next
	default:
		return fmt.Errorf("unknown effect scope %q", e.Scope)
	}
	return nil
}
