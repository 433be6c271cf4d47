package actions

import (
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
)

// Patrol walks the patrol route. It closes the patrol mission without
// changing any fact.
type Patrol struct {
	*goap.BaseAction
}

func NewPatrol() *Patrol {
	return &Patrol{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "Patrol",
			Tag:           "EnemyAction.Patrol",
			Cost:          1,
			Duration:      1.0,
			Interruptible: true,
			Preconditions: []string{facts.NeedToPatrol},
			Effects:       []string{facts.ExecutePatrolMission},
		}),
	}
}

func (a *Patrol) ApplyEffect(state goap.WorldState) goap.WorldState {
	return state.Clone()
}

// Stand holds position. It competes with Patrol for the patrol mission and
// wins when no patrol is needed: while NeedToPatrol is true, Stand reports it
// as a requirement nothing can close, so the planner routes through Patrol.
type Stand struct {
	*goap.BaseAction
}

func NewStand() *Stand {
	return &Stand{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "Stand",
			Tag:           "EnemyAction.Stand",
			Cost:          1,
			Duration:      1.0,
			Interruptible: true,
			Preconditions: []string{facts.NeedToPatrol},
			Effects:       []string{facts.ExecutePatrolMission},
		}),
	}
}

func (a *Stand) CheckUnmetPreconditions(state goap.WorldState) []string {
	if state.CheckState(facts.NeedToPatrol, true) {
		return []string{facts.NeedToPatrol}
	}
	return []string{}
}

func (a *Stand) ApplyEffect(state goap.WorldState) goap.WorldState {
	return state.Clone()
}

// SearchLocation investigates the last known disturbance. Finishing the
// search ends the investigation mission.
type SearchLocation struct {
	*goap.BaseAction
}

func NewSearchLocation() *SearchLocation {
	return &SearchLocation{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "SearchLocation",
			Tag:           "EnemyAction.SearchLocation",
			Cost:          1,
			Duration:      1.0,
			Interruptible: true,
			NeedsMovement: true,
			Effects:       []string{facts.ExecuteInvestigationMission},
		}),
	}
}

func (a *SearchLocation) ApplyEffect(state goap.WorldState) goap.WorldState {
	return lower(state, facts.ExecuteInvestigationMission)
}

// RequestHelp blows the bugle. Reinforcements deal with the enemy and the
// bugle is spent.
type RequestHelp struct {
	*goap.BaseAction
}

func NewRequestHelp() *RequestHelp {
	return &RequestHelp{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "RequestHelp",
			Tag:           "EnemyAction.RequestHelp",
			Cost:          2,
			Duration:      1.0,
			Interruptible: true,
			Preconditions: []string{facts.HasBugle},
			Effects:       []string{facts.ExecuteKillEnemyMission, facts.EnemyIsAlive},
		}),
	}
}

func (a *RequestHelp) ApplyEffect(state goap.WorldState) goap.WorldState {
	next := lower(state, facts.EnemyIsAlive)
	if next.CheckState(facts.HasBugle, true) {
		next.SetFact(facts.HasBugle, false)
	}
	return next
}

// lower returns a copy of state with name set to false if it is present and
// true.
func lower(state goap.WorldState, name string) goap.WorldState {
	next := state.Clone()
	if next.CheckState(name, true) {
		next.SetFact(name, false)
	}
	return next
}
