package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/actions"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
	"upside-down-research.com/oss/enemyai/internal/goap/goals"
)

type event struct {
	action      string
	finished    bool
	interrupted bool
}

type recorder struct {
	events    []event
	navigated []goap.Vector
	navErr    error
}

func (r *recorder) ActionStarted(agentID string, action goap.Action) {
	r.events = append(r.events, event{action: action.Name()})
}

func (r *recorder) ActionFinished(agentID string, action goap.Action, interrupted bool) {
	r.events = append(r.events, event{action: action.Name(), finished: true, interrupted: interrupted})
}

func (r *recorder) Navigate(ctx context.Context, agentID string, action goap.Action) error {
	if r.navErr != nil {
		return r.navErr
	}
	r.navigated = append(r.navigated, action.Location())
	return nil
}

func (r *recorder) started() []string {
	var names []string
	for _, e := range r.events {
		if !e.finished {
			names = append(names, e.action)
		}
	}
	return names
}

type countingObserver struct {
	calls int
}

func (c *countingObserver) ObservePlan(goap.PlanReport) {
	c.calls++
}

var enemyAt = goap.Vector{X: 10, Y: 20, Z: 0}

func killState() goap.WorldState {
	return goap.NewWorldState(map[string]bool{
		facts.HasMelee:                    true,
		facts.MeleeEquipped:               false,
		facts.PrepareToAttack:             false,
		facts.EnemyIsAlive:                true,
		facts.LostEnemy:                   false,
		facts.ExecuteKillEnemyMission:     true,
		facts.ExecuteInvestigationMission: false,
		facts.ExecutePatrolMission:        false,
		facts.NeedToPatrol:                true,
	}, map[string]goap.Vector{
		facts.EnemyLocation: enemyAt,
	})
}

func library() []goap.Action {
	return []goap.Action{
		actions.NewEquipMeleeWeapon(),
		actions.NewPrepareToMeleeAttack(),
		actions.NewAttackEnemy(),
		actions.NewPatrol(),
		actions.NewStand(),
	}
}

func allGoals() []goap.Goal {
	return []goap.Goal{
		goals.NewExecuteKillEnemyMission(),
		goals.NewExecuteInvestigationMission(),
		goals.NewExecutePatrolMission(),
	}
}

func TestController(t *testing.T) {
	ctx := context.Background()

	t.Run("Executes the plan one action per duration", func(t *testing.T) {
		rec := &recorder{}
		c := New(killState(), library(), allGoals(), nil,
			WithListener(rec), WithNavigator(rec), WithReplanInterval(0))

		for i := 0; i < 3; i++ {
			require.NoError(t, c.Tick(ctx, 1.0))
		}

		assert.Equal(t, []string{"EquipMeleeWeapon", "PrepareToMeleeAttack", "AttackEnemy"}, rec.started())
		assert.Equal(t, []goap.Vector{enemyAt}, rec.navigated)
		assert.True(t, c.Idle())

		ws := c.State()
		assert.True(t, ws.CheckState(facts.MeleeEquipped, true))
		assert.True(t, ws.CheckState(facts.PrepareToAttack, false))
		assert.Equal(t, "ExecuteKillEnemyMission", c.CurrentGoal().Name())
	})

	t.Run("Non interruptible action finishes first", func(t *testing.T) {
		rec := &recorder{}
		c := New(killState(), library(), allGoals(), nil, WithListener(rec), WithReplanInterval(0))

		require.NoError(t, c.Tick(ctx, 0.5))
		require.Equal(t, "EquipMeleeWeapon", c.CurrentAction().Name())
		assert.False(t, c.Interrupt())
		assert.Equal(t, "EquipMeleeWeapon", c.CurrentAction().Name())

		require.NoError(t, c.Tick(ctx, 0.5))
		require.NoError(t, c.Tick(ctx, 0.5))
		require.Equal(t, "PrepareToMeleeAttack", c.CurrentAction().Name())

		assert.True(t, c.Interrupt())
		assert.True(t, c.Idle())
		assert.Equal(t, event{action: "PrepareToMeleeAttack", finished: true, interrupted: true}, rec.events[len(rec.events)-1])
		assert.True(t, c.State().CheckState(facts.PrepareToAttack, true), "an interrupted action still applies its effect")
	})

	t.Run("Goal change replans", func(t *testing.T) {
		ws := killState()
		ws.SetFact(facts.ExecuteKillEnemyMission, false)
		ws.SetFact(facts.ExecutePatrolMission, true)
		rec := &recorder{}
		c := New(ws, library(), allGoals(), nil, WithListener(rec), WithReplanInterval(0))

		require.NoError(t, c.Tick(ctx, 0.5))
		require.Equal(t, "ExecutePatrolMission", c.CurrentGoal().Name())
		require.Equal(t, "Patrol", c.CurrentAction().Name())

		c.SetFact(facts.ExecuteKillEnemyMission, true)
		require.NoError(t, c.Tick(ctx, 0.5))

		assert.Equal(t, "ExecuteKillEnemyMission", c.CurrentGoal().Name())
		assert.Equal(t, "EquipMeleeWeapon", c.CurrentAction().Name())
		assert.Contains(t, rec.events, event{action: "Patrol", finished: true, interrupted: true})
	})

	t.Run("Unreachable goal waits for the interval", func(t *testing.T) {
		obs := &countingObserver{}
		planner := goap.NewPlanner(goap.WithObserver(obs))
		c := New(killState(), []goap.Action{actions.NewPatrol()}, allGoals(), planner, WithReplanInterval(1.0))

		for i := 0; i < 5; i++ {
			require.NoError(t, c.Tick(ctx, 0.1))
		}
		assert.Equal(t, 1, obs.calls)
		assert.True(t, c.Idle())

		for i := 0; i < 10; i++ {
			require.NoError(t, c.Tick(ctx, 0.1))
		}
		assert.Equal(t, 2, obs.calls)
	})

	t.Run("Navigation failure drops the plan", func(t *testing.T) {
		navErr := errors.New("no path")
		rec := &recorder{navErr: navErr}
		c := New(killState(), []goap.Action{actions.NewAttackEnemy()}, allGoals(), nil, WithNavigator(rec))
		c.SetFact(facts.PrepareToAttack, true)

		err := c.Tick(ctx, 0.1)

		require.Error(t, err)
		assert.ErrorIs(t, err, navErr)
		assert.True(t, c.Idle())
	})

	t.Run("Cancelled context", func(t *testing.T) {
		c := New(killState(), library(), allGoals(), nil)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, c.Tick(cancelled, 0.1), context.Canceled)
		assert.Nil(t, c.CurrentPlan())
	})

	t.Run("No active goal idles", func(t *testing.T) {
		ws := killState()
		ws.SetFact(facts.ExecuteKillEnemyMission, false)
		c := New(ws, library(), allGoals(), nil)

		require.NoError(t, c.Tick(ctx, 0.1))

		assert.Nil(t, c.FindGoal())
		assert.True(t, c.Idle())
		assert.Nil(t, c.CurrentGoal())
	})

	t.Run("Sensor updates", func(t *testing.T) {
		c := New(killState(), library(), allGoals(), nil)

		assert.True(t, c.SetPosition(facts.EnemyLocation, goap.Vector{X: 1}))
		assert.False(t, c.SetPosition(facts.PatrolPoint, goap.Vector{X: 1}))
		assert.False(t, c.SetFact("Teleported", true))

		snapshot := c.State()
		snapshot.SetFact(facts.HasMelee, false)
		assert.True(t, c.State().CheckState(facts.HasMelee, true), "State returns a copy")
	})

	t.Run("CallPlanner", func(t *testing.T) {
		c := New(killState(), library(), allGoals(), nil)

		assert.True(t, c.CallPlanner(nil).Empty())

		plan := c.CallPlanner(c.FindGoal())
		assert.Equal(t, []string{"EquipMeleeWeapon", "PrepareToMeleeAttack", "AttackEnemy"}, plan.Names())
		assert.Empty(t, c.Model().Goals(), "the model is reset after planning")
		assert.Zero(t, c.Planner().LiveNodes())
	})
}

func TestFromProfile(t *testing.T) {
	t.Run("Default profile", func(t *testing.T) {
		p := config.DefaultProfile()
		p.Agent.ID = "grunt-1"
		obs := &countingObserver{}

		c, err := FromProfile(p, nil, obs)
		require.NoError(t, err)

		assert.Equal(t, "grunt-1", c.ID())
		assert.Equal(t, "grunt", c.Name())
		assert.Len(t, c.Model().Actions(), len(p.Actions))
		assert.Equal(t, 3, c.Goals().Len())
		assert.Equal(t, p.Planner.MaxIterations, c.Planner().MaxIterations())

		require.NotNil(t, c.FindGoal())
		c.CallPlanner(c.FindGoal())
		assert.Equal(t, 1, obs.calls)
	})

	t.Run("Unknown action", func(t *testing.T) {
		p := config.DefaultProfile()
		p.Actions = append(p.Actions, "Fly")

		_, err := FromProfile(p, DefaultRegistry(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Fly")
	})

	t.Run("Unknown goal", func(t *testing.T) {
		p := config.DefaultProfile()
		p.Goals = []string{"Dance"}

		_, err := FromProfile(p, DefaultRegistry(), nil)
		require.Error(t, err)
	})

	t.Run("Generated id", func(t *testing.T) {
		c, err := FromProfile(config.DefaultProfile(), nil, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID())
	})
}
