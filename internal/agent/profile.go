package agent

import (
	"fmt"

	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/actions"
	"upside-down-research.com/oss/enemyai/internal/goap/goals"
)

// DefaultRegistry returns a registry holding every built-in action and goal.
func DefaultRegistry() *goap.Registry {
	r := goap.NewRegistry()
	actions.Register(r)
	goals.Register(r)
	return r
}

// FromProfile builds a Controller from an agent profile. observer may be nil.
func FromProfile(p *config.Profile, registry *goap.Registry, observer goap.PlanObserver, opts ...Option) (*Controller, error) {
	if registry == nil {
		registry = DefaultRegistry()
	}

	library, err := registry.BuildActions(p.Actions)
	if err != nil {
		return nil, fmt.Errorf("failed to build action library: %w", err)
	}
	goalList, err := registry.BuildGoals(p.Goals)
	if err != nil {
		return nil, fmt.Errorf("failed to build goals: %w", err)
	}

	plannerOpts := []goap.PlannerOption{goap.WithMaxIterations(p.Planner.MaxIterations)}
	if observer != nil {
		plannerOpts = append(plannerOpts, goap.WithObserver(observer))
	}

	base := []Option{
		WithID(p.Agent.ID),
		WithName(p.Agent.Name),
		WithReplanInterval(p.Controller.ReplanIntervalSec),
		WithReplanOnGoalChange(p.Controller.ReplanOnGoalChange),
	}

	return New(p.WorldState(), library, goalList, goap.NewPlanner(plannerOpts...), append(base, opts...)...), nil
}
