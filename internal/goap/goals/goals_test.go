package goals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
	"upside-down-research.com/oss/enemyai/internal/goap/goals"
)

func TestValues(t *testing.T) {
	kill := goals.NewExecuteKillEnemyMission()
	investigate := goals.NewExecuteInvestigationMission()
	patrol := goals.NewExecutePatrolMission()

	t.Run("Kill needs a living enemy that is not lost", func(t *testing.T) {
		ws := goap.NewWorldState(map[string]bool{
			facts.ExecuteKillEnemyMission: true,
			facts.EnemyIsAlive:            true,
			facts.LostEnemy:               false,
		}, nil)
		assert.Equal(t, goals.KillEnemyValue, kill.CurrentValue(ws))

		ws.SetFact(facts.LostEnemy, true)
		assert.Zero(t, kill.CurrentValue(ws))

		missing := goap.NewWorldState(map[string]bool{
			facts.ExecuteKillEnemyMission: true,
			facts.EnemyIsAlive:            true,
		}, nil)
		assert.Zero(t, kill.CurrentValue(missing), "LostEnemy must be present and false")
	})

	t.Run("Investigation and patrol follow their mission", func(t *testing.T) {
		ws := goap.NewWorldState(map[string]bool{
			facts.ExecuteInvestigationMission: true,
			facts.ExecutePatrolMission:        false,
		}, nil)
		assert.Equal(t, goals.InvestigationValue, investigate.CurrentValue(ws))
		assert.Zero(t, patrol.CurrentValue(ws))

		ws.SetFact(facts.ExecutePatrolMission, true)
		assert.Equal(t, goals.PatrolValue, patrol.CurrentValue(ws))
		ws.SetFact(facts.ExecutePatrolMission, false)
		assert.Zero(t, patrol.CurrentValue(ws), "patrol value must drop once the mission ends")
	})

	t.Run("Targets", func(t *testing.T) {
		assert.Equal(t, []string{facts.ExecuteKillEnemyMission, facts.EnemyIsAlive, facts.LostEnemy}, kill.Targets())
		assert.Equal(t, []string{facts.ExecuteInvestigationMission}, investigate.Targets())
		assert.Equal(t, []string{facts.ExecutePatrolMission}, patrol.Targets())
	})
}

func TestFindGoal(t *testing.T) {
	set := goap.NewGoalSet(
		goals.NewExecuteKillEnemyMission(),
		goals.NewExecuteInvestigationMission(),
		goals.NewExecutePatrolMission(),
	)

	t.Run("Kill over patrol", func(t *testing.T) {
		ws := goap.NewWorldState(map[string]bool{
			facts.ExecuteKillEnemyMission:     true,
			facts.EnemyIsAlive:                true,
			facts.LostEnemy:                   false,
			facts.ExecuteInvestigationMission: false,
			facts.ExecutePatrolMission:        true,
		}, nil)
		assert.Equal(t, "ExecuteKillEnemyMission", set.FindGoal(ws).Name())
	})

	t.Run("Lost enemy falls back to investigation", func(t *testing.T) {
		ws := goap.NewWorldState(map[string]bool{
			facts.ExecuteKillEnemyMission:     true,
			facts.EnemyIsAlive:                true,
			facts.LostEnemy:                   true,
			facts.ExecuteInvestigationMission: true,
			facts.ExecutePatrolMission:        true,
		}, nil)
		assert.Equal(t, "ExecuteInvestigationMission", set.FindGoal(ws).Name())
	})

	t.Run("Nothing active", func(t *testing.T) {
		ws := goap.NewWorldState(map[string]bool{facts.ExecutePatrolMission: false}, nil)
		assert.Nil(t, set.FindGoal(ws))
	})
}

func TestRegister(t *testing.T) {
	r := goap.NewRegistry()
	goals.Register(r)
	assert.Equal(t, []string{"ExecuteInvestigationMission", "ExecuteKillEnemyMission", "ExecutePatrolMission"}, r.GoalNames())
}
