// Package goals holds the built-in enemy goals. Their values give a fixed
// priority order: kill (3) over investigation (2) over patrol (1).
package goals

import (
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
)

const (
	KillEnemyValue     = 3.0
	InvestigationValue = 2.0
	PatrolValue        = 1.0
)

// ExecuteKillEnemyMission pursues a living enemy that has not been lost.
type ExecuteKillEnemyMission struct {
	*goap.BaseGoal
}

func NewExecuteKillEnemyMission() *ExecuteKillEnemyMission {
	return &ExecuteKillEnemyMission{
		BaseGoal: goap.NewBaseGoal("ExecuteKillEnemyMission", 0, 0,
			[]string{facts.ExecuteKillEnemyMission, facts.EnemyIsAlive, facts.LostEnemy}),
	}
}

func (g *ExecuteKillEnemyMission) CurrentValue(state goap.WorldState) float64 {
	if state.CheckState(facts.ExecuteKillEnemyMission, true) &&
		state.CheckState(facts.EnemyIsAlive, true) &&
		state.CheckState(facts.LostEnemy, false) {
		return KillEnemyValue
	}
	return 0
}

// ExecuteInvestigationMission searches a disturbance.
type ExecuteInvestigationMission struct {
	*goap.BaseGoal
}

func NewExecuteInvestigationMission() *ExecuteInvestigationMission {
	return &ExecuteInvestigationMission{
		BaseGoal: goap.NewBaseGoal("ExecuteInvestigationMission", 0, 0,
			[]string{facts.ExecuteInvestigationMission}),
	}
}

func (g *ExecuteInvestigationMission) CurrentValue(state goap.WorldState) float64 {
	if state.CheckState(facts.ExecuteInvestigationMission, true) {
		return InvestigationValue
	}
	return 0
}

// ExecutePatrolMission keeps the agent on its route.
type ExecutePatrolMission struct {
	*goap.BaseGoal
}

func NewExecutePatrolMission() *ExecutePatrolMission {
	return &ExecutePatrolMission{
		BaseGoal: goap.NewBaseGoal("ExecutePatrolMission", 0, 0,
			[]string{facts.ExecutePatrolMission}),
	}
}

func (g *ExecutePatrolMission) CurrentValue(state goap.WorldState) float64 {
	if state.CheckState(facts.ExecutePatrolMission, true) {
		return PatrolValue
	}
	return 0
}

// Register installs every built-in goal into r.
func Register(r *goap.Registry) {
	r.RegisterGoal("ExecuteKillEnemyMission", func() goap.Goal { return NewExecuteKillEnemyMission() })
	r.RegisterGoal("ExecuteInvestigationMission", func() goap.Goal { return NewExecuteInvestigationMission() })
	r.RegisterGoal("ExecutePatrolMission", func() goap.Goal { return NewExecutePatrolMission() })
}
