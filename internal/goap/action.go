package goap

import (
	"fmt"
	"strings"
)

// Action is a unit of agent behavior as the planner sees it: symbolic
// preconditions and effects, a situational cost and a projection of its effect
// onto a WorldState.
//
// Actions hold no per-plan data. All search bookkeeping lives in the planner,
// so one instance can be reused across any number of planning calls.
type Action interface {
	// Name returns the symbolic name of this action
	Name() string

	// Tag returns the gameplay tag used to correlate the action with
	// animation and other external systems
	Tag() string

	// Preconditions returns the fact names that must hold before the action runs
	Preconditions() []string

	// Effects returns the fact names the action is credited with closing
	Effects() []string

	// Duration is how long the action takes, in seconds. Informational to the planner.
	Duration() float64

	// Interruptible reports whether the controller may stop the action midway
	Interruptible() bool

	// NeedsMovement tells the controller to navigate before executing
	NeedsMovement() bool

	// Location is where the action takes place
	Location() Vector
	SetLocation(Vector)

	// CheckUnmetPreconditions returns the preconditions the planner must chain
	// backward through
	CheckUnmetPreconditions(state WorldState) []string

	// ApplyEffect returns the state after the action completes. The input is
	// never modified.
	ApplyEffect(state WorldState) WorldState

	// Cost returns the non-negative cost of the action in the given state
	Cost(state WorldState) int

	// CanBeChosen reports whether every precondition currently holds
	CanBeChosen(state WorldState) bool
}

// ActionSpec is the authored data table of an action.
type ActionSpec struct {
	Name          string
	Tag           string
	Cost          int
	Duration      float64
	Interruptible bool
	NeedsMovement bool
	Preconditions []string
	Effects       []string
}

// BaseAction implements Action from an ActionSpec. Concrete actions embed it
// and override the methods whose behavior is asymmetric.
type BaseAction struct {
	name          string
	tag           string
	cost          int
	duration      float64
	interruptible bool
	needsMovement bool
	preconditions []string
	effects       []string
	location      Vector
}

// NewBaseAction creates a BaseAction. Duplicate fact names are dropped and a
// negative cost is treated as zero.
func NewBaseAction(spec ActionSpec) *BaseAction {
	cost := spec.Cost
	if cost < 0 {
		cost = 0
	}
	tag := spec.Tag
	if tag == "" {
		tag = "EnemyAction." + spec.Name
	}
	return &BaseAction{
		name:          spec.Name,
		tag:           tag,
		cost:          cost,
		duration:      spec.Duration,
		interruptible: spec.Interruptible,
		needsMovement: spec.NeedsMovement,
		preconditions: uniqueNames(spec.Preconditions),
		effects:       uniqueNames(spec.Effects),
	}
}

func (a *BaseAction) Name() string {
	return a.name
}

func (a *BaseAction) Tag() string {
	return a.tag
}

func (a *BaseAction) Preconditions() []string {
	return a.preconditions
}

func (a *BaseAction) Effects() []string {
	return a.effects
}

func (a *BaseAction) Duration() float64 {
	return a.duration
}

func (a *BaseAction) Interruptible() bool {
	return a.interruptible
}

func (a *BaseAction) NeedsMovement() bool {
	return a.needsMovement
}

func (a *BaseAction) Location() Vector {
	return a.location
}

func (a *BaseAction) SetLocation(v Vector) {
	a.location = v
}

// StaticCost returns the authored cost, ignoring world state.
func (a *BaseAction) StaticCost() int {
	return a.cost
}

// CheckUnmetPreconditions returns each precondition that is present in state
// and false. A precondition missing from state entirely is not reported.
func (a *BaseAction) CheckUnmetPreconditions(state WorldState) []string {
	unmet := []string{}
	for _, name := range a.preconditions {
		if state.CheckState(name, false) {
			unmet = append(unmet, name)
		}
	}
	return unmet
}

// ApplyEffect sets every precondition and every effect that exists in state
// to true.
func (a *BaseAction) ApplyEffect(state WorldState) WorldState {
	next := state.Clone()
	for _, name := range a.preconditions {
		next.assign(name, true)
	}
	for _, name := range a.effects {
		next.assign(name, true)
	}
	return next
}

func (a *BaseAction) Cost(state WorldState) int {
	return a.cost
}

func (a *BaseAction) CanBeChosen(state WorldState) bool {
	for _, name := range a.preconditions {
		if !state.CheckState(name, true) {
			return false
		}
	}
	return true
}

func (a *BaseAction) String() string {
	return fmt.Sprintf("Action[%s: pre=%s, eff=%s, cost=%d]",
		a.name, strings.Join(a.preconditions, ","), strings.Join(a.effects, ","), a.cost)
}

func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
