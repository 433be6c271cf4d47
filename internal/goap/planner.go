package goap

import (
	"container/heap"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultMaxIterations bounds how many nodes a single search may pop.
const DefaultMaxIterations = 1000

// Plan is an ordered sequence of actions that achieves a goal. Actions are in
// execution order.
type Plan struct {
	ID      string
	Goal    string
	Actions []Action
	Cost    int
}

// Empty reports whether the plan has no actions.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// Duration sums the authored durations of the plan's actions, in seconds.
func (p *Plan) Duration() float64 {
	total := 0.0
	for _, a := range p.Actions {
		total += a.Duration()
	}
	return total
}

// Names returns the action names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		names[i] = a.Name()
	}
	return names
}

// String returns a string representation of the plan.
func (p *Plan) String() string {
	if len(p.Actions) == 0 {
		return "Empty Plan"
	}

	parts := make([]string, len(p.Actions))
	for i, action := range p.Actions {
		parts[i] = fmt.Sprintf("%d. %s", i+1, action.Name())
	}

	return fmt.Sprintf("Plan %s (cost: %d):\n%s", p.Goal, p.Cost, strings.Join(parts, "\n"))
}

// Outcome classifies how a search ended.
type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeUnreachable    Outcome = "unreachable"
	OutcomeIterationLimit Outcome = "iteration_limit"
	OutcomeInvalid        Outcome = "invalid"
)

// PlanReport describes one Plan call.
type PlanReport struct {
	PlanID        string
	Goal          string
	Outcome       Outcome
	Iterations    int
	NodesCreated  int
	NodesReleased int
	Cost          int
	Length        int
	Elapsed       time.Duration
}

// PlanObserver receives a report after every Plan call.
type PlanObserver interface {
	ObservePlan(report PlanReport)
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithMaxIterations caps the nodes popped per search. Values below one fall
// back to DefaultMaxIterations.
func WithMaxIterations(n int) PlannerOption {
	return func(p *Planner) {
		if n < 1 {
			n = DefaultMaxIterations
		}
		p.maxIterations = n
	}
}

// WithObserver attaches a PlanObserver.
func WithObserver(o PlanObserver) PlannerOption {
	return func(p *Planner) {
		p.observer = o
	}
}

// Planner searches backward from a goal's target facts to a sequence of
// actions that closes them. It keeps no state between calls; each call owns
// its own node arena.
type Planner struct {
	maxIterations int
	observer      PlanObserver
	live          atomic.Int64
}

// NewPlanner creates a Planner.
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{maxIterations: DefaultMaxIterations}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxIterations returns the search cap.
func (p *Planner) MaxIterations() int {
	return p.maxIterations
}

// LiveNodes returns the number of search nodes currently allocated by
// in-flight Plan calls.
func (p *Planner) LiveNodes() int64 {
	return p.live.Load()
}

// Heuristic estimates the requirements left open after crediting action's
// effects: the size of requires minus the effects it contains.
func Heuristic(action Action, requires []string) int {
	h := len(requires)
	for _, name := range action.Effects() {
		if requirementSet(requires).contains(name) {
			h--
		}
	}
	return h
}

// Plan finds the cheapest sequence of actions from model's library that
// closes the facts goal seeds. The search state is the set of facts still
// required; a node whose set is empty ends the search.
//
// Plan never fails loudly: a nil goal, a missing state or an empty library
// logs a warning and returns an empty plan, and so does a goal no action can
// reach.
func (p *Planner) Plan(model *WorldModel, goal Goal) *Plan {
	start := time.Now()
	plan := &Plan{ID: uuid.NewString(), Actions: []Action{}}
	report := PlanReport{PlanID: plan.ID, Outcome: OutcomeInvalid}

	defer func() {
		report.Elapsed = time.Since(start)
		report.Length = len(plan.Actions)
		report.Cost = plan.Cost
		if p.observer != nil {
			p.observer.ObservePlan(report)
		}
	}()

	if goal == nil {
		log.Warn("Goal == nil, nothing to plan")
		return plan
	}
	plan.Goal = goal.Name()
	report.Goal = goal.Name()

	if model == nil || model.State() == nil {
		log.Warn("WorldModel or WorldState is nil", "goal", goal.Name())
		return plan
	}
	if len(model.Actions()) == 0 {
		log.Warn("Action library is empty", "goal", goal.Name())
		return plan
	}

	state := *model.State()
	model.Initialize()
	model.AddGoal(goal)

	arena := newNodeArena(&p.live)
	defer func() {
		report.NodesCreated = arena.len()
		report.NodesReleased = arena.release()
	}()

	root := arena.alloc(node{
		requires: newRequirementSet(goal.CheckUnmetPreconditions(state)),
		parent:   noNode,
	})
	open := &openSet{arena: arena}
	heap.Push(open, root)

	log.Info("Starting plan search", "goal", goal.Name(), "requires", strings.Join(arena.get(root).requires, ","))

	report.Outcome = OutcomeUnreachable
	for open.Len() > 0 {
		if report.Iterations >= p.maxIterations {
			report.Outcome = OutcomeIterationLimit
			break
		}
		report.Iterations++

		id := heap.Pop(open).(nodeID)
		current := *arena.get(id)

		if len(current.requires) == 0 {
			plan.Actions = reconstructPath(arena, id)
			plan.Cost = current.g
			report.Outcome = OutcomeFound
			break
		}

		log.Debug("Exploring node", "f", current.f, "g", current.g, "requires", strings.Join(current.requires, ","))

		for _, action := range model.Actions() {
			h := Heuristic(action, current.requires)
			if h >= len(current.requires) {
				continue
			}

			cost := action.Cost(state)
			if cost < 0 {
				cost = 0
			}
			g := current.g + cost

			child := node{
				requires: current.requires.
					with(action.CheckUnmetPreconditions(state)).
					without(action.Effects()),
				action: action,
				parent: id,
				g:      g,
				h:      h,
				f:      g + h,
			}
			heap.Push(open, arena.alloc(child))
		}
	}

	switch report.Outcome {
	case OutcomeFound:
		log.Info("Plan found", "goal", goal.Name(), "actions", len(plan.Actions), "cost", plan.Cost, "iterations", report.Iterations)
	case OutcomeIterationLimit:
		log.Warn("Plan search reached max iterations", "goal", goal.Name(), "maxIterations", p.maxIterations)
	default:
		log.Info("No plan found to achieve goal", "goal", goal.Name(), "iterations", report.Iterations)
	}

	return plan
}

// reconstructPath walks parent links from the terminal node to the root. The
// search runs backward from the goal, so the deepest node carries the action
// that must run first and the walk already yields execution order.
func reconstructPath(arena *nodeArena, id nodeID) []Action {
	actions := []Action{}
	for {
		n := arena.get(id)
		if n.parent == noNode {
			break
		}
		actions = append(actions, n.action)
		id = n.parent
	}
	return actions
}
