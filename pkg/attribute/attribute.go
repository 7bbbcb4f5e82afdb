// Package attribute implements the additive/multiplicative modifier
// stack spec.md §6 calls the "AttributeValue helper": a small pure
// value type with stable UUID-keyed modifier identity, the same
// pattern dragonfly (github.com/df-mc/dragonfly) uses github.com/google/uuid
// for across its attribute and entity-identity code.
package attribute

import "github.com/google/uuid"

// Operation selects how a Modifier combines with the running total.
type Operation int

const (
	// Add adds Amount directly to the base value.
	Add Operation = iota
	// MultiplyBase adds Amount * (base plus every Add modifier) to the
	// running total (modifiers of this kind are summed against that
	// value before being applied).
	MultiplyBase
	// MultiplyTotal multiplies the running total by (1 + Amount),
	// applied after every Add and MultiplyBase modifier.
	MultiplyTotal
)

// Modifier is a single named adjustment to a Value.
type Modifier struct {
	UUID      uuid.UUID
	Amount    float64
	Operation Operation
}

// Value is a base scalar plus a stack of modifiers keyed by UUID so a
// modifier can be inserted and removed idempotently.
type Value struct {
	base      float64
	modifiers map[uuid.UUID]Modifier
}

// New creates a Value with the given base and no modifiers.
func New(base float64) *Value {
	return &Value{base: base, modifiers: make(map[uuid.UUID]Modifier)}
}

// Base returns the unmodified base value.
func (v *Value) Base() float64 { return v.base }

// SetBase overwrites the base value.
func (v *Value) SetBase(base float64) { v.base = base }

// AddModifier inserts or replaces the modifier keyed by m.UUID.
func (v *Value) AddModifier(m Modifier) {
	if v.modifiers == nil {
		v.modifiers = make(map[uuid.UUID]Modifier)
	}
	v.modifiers[m.UUID] = m
}

// RemoveModifier deletes the modifier with the given UUID, if present.
func (v *Value) RemoveModifier(id uuid.UUID) {
	delete(v.modifiers, id)
}

// HasModifier reports whether a modifier with the given UUID is present.
func (v *Value) HasModifier(id uuid.UUID) bool {
	_, ok := v.modifiers[id]
	return ok
}

// Total computes the effective value: base plus every Add modifier,
// plus that sum times every MultiplyBase modifier's amount, all of that
// then scaled by (1+amount) for every MultiplyTotal modifier in turn.
func (v *Value) Total() float64 {
	result := v.base
	for _, m := range v.modifiers {
		if m.Operation == Add {
			result += m.Amount
		}
	}
	base := result
	for _, m := range v.modifiers {
		if m.Operation == MultiplyBase {
			result += base * m.Amount
		}
	}
	for _, m := range v.modifiers {
		if m.Operation == MultiplyTotal {
			result *= 1 + m.Amount
		}
	}
	return result
}
