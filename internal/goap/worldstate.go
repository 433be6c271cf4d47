package goap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Vector is a position in world space.
type Vector struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v Vector) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// WorldState is the blackboard an agent plans against: named boolean facts and
// named positions. The set of names is fixed when the state is authored; a name
// missing from the state is unknown, which is not the same as false.
//
// WorldState has value semantics for planning purposes. Anything that projects
// a change (Action.ApplyEffect) works on a Clone.
type WorldState struct {
	facts     map[string]bool
	positions map[string]Vector
}

// NewWorldState creates a WorldState with the given authored schema.
// The maps are copied.
func NewWorldState(facts map[string]bool, positions map[string]Vector) WorldState {
	ws := WorldState{
		facts:     make(map[string]bool, len(facts)),
		positions: make(map[string]Vector, len(positions)),
	}
	for k, v := range facts {
		ws.facts[k] = v
	}
	for k, v := range positions {
		ws.positions[k] = v
	}
	return ws
}

// Clone creates a deep copy of the WorldState.
func (ws WorldState) Clone() WorldState {
	return NewWorldState(ws.facts, ws.positions)
}

// GetFact returns the value of a fact and whether the fact exists.
func (ws WorldState) GetFact(name string) (value bool, found bool) {
	value, found = ws.facts[name]
	return value, found
}

// HasFact reports whether name is part of the schema.
func (ws WorldState) HasFact(name string) bool {
	_, found := ws.facts[name]
	return found
}

// SetFact updates an existing fact. Unknown names are rejected with a warning
// and the state is left untouched.
func (ws WorldState) SetFact(name string, value bool) bool {
	if _, found := ws.facts[name]; !found {
		log.Warn("Do not have this world state", "fact", name)
		return false
	}
	ws.facts[name] = value
	return true
}

// GetPosition returns a named position and whether it exists.
func (ws WorldState) GetPosition(name string) (Vector, bool) {
	v, found := ws.positions[name]
	return v, found
}

// SetPosition updates an existing position. Unknown names are rejected with a
// warning.
func (ws WorldState) SetPosition(name string, value Vector) bool {
	if _, found := ws.positions[name]; !found {
		log.Warn("Do not have this world state", "position", name)
		return false
	}
	ws.positions[name] = value
	return true
}

// CheckState reports whether name is present and equal to want.
func (ws WorldState) CheckState(name string, want bool) bool {
	v, found := ws.facts[name]
	return found && v == want
}

// assign sets a fact only when it is present, without logging. Effects use it
// so that a profile lacking an optional fact simply ignores that part of the
// effect.
func (ws WorldState) assign(name string, value bool) {
	if _, found := ws.facts[name]; found {
		ws.facts[name] = value
	}
}

// Facts returns the fact names in sorted order.
func (ws WorldState) Facts() []string {
	names := make([]string, 0, len(ws.facts))
	for k := range ws.facts {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Positions returns the position names in sorted order.
func (ws WorldState) Positions() []string {
	names := make([]string, 0, len(ws.positions))
	for k := range ws.positions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Diff returns the facts whose values differ between ws and other, sorted.
// Facts present in only one of the two states are included.
func (ws WorldState) Diff(other WorldState) []string {
	differences := []string{}
	for key, value := range ws.facts {
		otherValue, exists := other.facts[key]
		if !exists || otherValue != value {
			differences = append(differences, key)
		}
	}
	for key := range other.facts {
		if _, exists := ws.facts[key]; !exists {
			differences = append(differences, key)
		}
	}
	sort.Strings(differences)
	return differences
}

// String returns a stable representation of the facts.
func (ws WorldState) String() string {
	if len(ws.facts) == 0 {
		return "{}"
	}

	parts := make([]string, 0, len(ws.facts))
	for _, k := range ws.Facts() {
		parts = append(parts, fmt.Sprintf("%s: %v", k, ws.facts[k]))
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
