package goap

import (
	"fmt"
	"strings"
)

// Goal is a desired end state the agent may pursue. Its current value is its
// urgency: higher wins, zero means not applicable right now.
type Goal interface {
	// Name returns the symbolic name of this goal
	Name() string

	// Targets returns the fact names this goal cares about
	Targets() []string

	// DecayRate is how fast the goal's value changes over time. Reserved; the
	// planner does not read it.
	DecayRate() float64

	// CurrentValue evaluates the goal's priority against state
	CurrentValue(state WorldState) float64

	// CheckUnmetPreconditions returns the target facts that seed the planner.
	// Despite the name these are the targets currently true in state.
	CheckUnmetPreconditions(state WorldState) []string

	// Discontentment maps a value onto an urgency curve
	Discontentment(value float64) float64
}

// BaseGoal implements Goal with a fixed value. Concrete goals embed it and
// override CurrentValue.
type BaseGoal struct {
	name      string
	value     float64
	decayRate float64
	targets   []string
}

// NewBaseGoal creates a BaseGoal.
func NewBaseGoal(name string, value, decayRate float64, targets []string) *BaseGoal {
	return &BaseGoal{
		name:      name,
		value:     value,
		decayRate: decayRate,
		targets:   uniqueNames(targets),
	}
}

func (g *BaseGoal) Name() string {
	return g.name
}

func (g *BaseGoal) Targets() []string {
	return g.targets
}

func (g *BaseGoal) DecayRate() float64 {
	return g.decayRate
}

func (g *BaseGoal) CurrentValue(state WorldState) float64 {
	return g.value
}

// CheckUnmetPreconditions returns the targets present in state and true.
func (g *BaseGoal) CheckUnmetPreconditions(state WorldState) []string {
	seed := []string{}
	for _, name := range g.targets {
		if state.CheckState(name, true) {
			seed = append(seed, name)
		}
	}
	return seed
}

func (g *BaseGoal) Discontentment(value float64) float64 {
	return value
}

func (g *BaseGoal) String() string {
	return fmt.Sprintf("Goal[%s: targets=%s, value=%.2f]", g.name, strings.Join(g.targets, ","), g.value)
}

// GoalSet is the list of goals an agent chooses from.
type GoalSet struct {
	goals []Goal
}

// NewGoalSet creates a GoalSet holding goals in order.
func NewGoalSet(goals ...Goal) *GoalSet {
	gs := &GoalSet{goals: make([]Goal, 0, len(goals))}
	for _, g := range goals {
		gs.Add(g)
	}
	return gs
}

// Add appends a goal. Nil goals are skipped.
func (gs *GoalSet) Add(goal Goal) {
	if goal == nil {
		return
	}
	gs.goals = append(gs.goals, goal)
}

// Goals returns all goals in the set.
func (gs *GoalSet) Goals() []Goal {
	return gs.goals
}

func (gs *GoalSet) Len() int {
	return len(gs.goals)
}

// FindGoal returns the goal with the strictly highest current value. The
// first goal reaching the maximum wins ties. Returns nil when no goal has a
// value above zero.
func (gs *GoalSet) FindGoal(state WorldState) Goal {
	var chosen Goal
	best := 0.0
	for _, goal := range gs.goals {
		value := goal.CurrentValue(state)
		if value > best {
			chosen = goal
			best = value
		}
	}
	return chosen
}
