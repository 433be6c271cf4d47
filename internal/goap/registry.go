package goap

import (
	"fmt"
	"sort"
	"strings"
)

// ActionFactory builds a fresh action instance for one agent.
type ActionFactory func() Action

// GoalFactory builds a fresh goal instance for one agent.
type GoalFactory func() Goal

// Registry maps symbolic names to action and goal factories. Agent profiles
// name their actions and goals; the registry turns those names into
// per-agent instances.
type Registry struct {
	actions map[string]ActionFactory
	goals   map[string]GoalFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]ActionFactory),
		goals:   make(map[string]GoalFactory),
	}
}

// RegisterAction registers an action factory, replacing any previous one
// with the same name.
func (r *Registry) RegisterAction(name string, factory ActionFactory) {
	r.actions[name] = factory
}

// RegisterGoal registers a goal factory, replacing any previous one with the
// same name.
func (r *Registry) RegisterGoal(name string, factory GoalFactory) {
	r.goals[name] = factory
}

func (r *Registry) HasAction(name string) bool {
	_, ok := r.actions[name]
	return ok
}

func (r *Registry) HasGoal(name string) bool {
	_, ok := r.goals[name]
	return ok
}

// ActionNames returns the registered action names, sorted.
func (r *Registry) ActionNames() []string {
	return sortedKeys(r.actions)
}

// GoalNames returns the registered goal names, sorted.
func (r *Registry) GoalNames() []string {
	return sortedKeys(r.goals)
}

// BuildActions instantiates the named actions in order.
func (r *Registry) BuildActions(names []string) ([]Action, error) {
	actions := make([]Action, 0, len(names))
	var unknown []string
	for _, name := range names {
		factory, ok := r.actions[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		actions = append(actions, factory())
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown actions: %s", strings.Join(unknown, ", "))
	}
	return actions, nil
}

// BuildGoals instantiates the named goals in order.
func (r *Registry) BuildGoals(names []string) ([]Goal, error) {
	goals := make([]Goal, 0, len(names))
	var unknown []string
	for _, name := range names {
		factory, ok := r.goals[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		goals = append(goals, factory())
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown goals: %s", strings.Join(unknown, ", "))
	}
	return goals, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
