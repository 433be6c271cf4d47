package goap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoal(t *testing.T) {
	// Known quirk, kept on purpose: the seed is the targets that already hold,
	// not the ones still missing.
	t.Run("Seed returns satisfied targets", func(t *testing.T) {
		g := NewBaseGoal("Hunt", 3, 0, []string{"alive", "seen", "absent"})
		ws := NewWorldState(map[string]bool{"alive": true, "seen": false}, nil)

		assert.Equal(t, []string{"alive"}, g.CheckUnmetPreconditions(ws))
	})

	t.Run("Value and discontentment", func(t *testing.T) {
		g := NewBaseGoal("Rest", 2.5, 0.1, nil)

		assert.Equal(t, 2.5, g.CurrentValue(WorldState{}))
		assert.Equal(t, 0.1, g.DecayRate())
		assert.Equal(t, 4.0, g.Discontentment(4))
	})
}

func TestGoalSet(t *testing.T) {
	ws := WorldState{}

	t.Run("Highest value wins", func(t *testing.T) {
		gs := NewGoalSet(
			NewBaseGoal("low", 1, 0, nil),
			NewBaseGoal("high", 3, 0, nil),
			NewBaseGoal("zero", 0, 0, nil),
		)
		assert.Equal(t, "high", gs.FindGoal(ws).Name())
	})

	t.Run("First maximum wins ties", func(t *testing.T) {
		gs := NewGoalSet(
			NewBaseGoal("first", 2, 0, nil),
			NewBaseGoal("second", 2, 0, nil),
		)
		assert.Equal(t, "first", gs.FindGoal(ws).Name())
	})

	t.Run("No goal above zero", func(t *testing.T) {
		gs := NewGoalSet(NewBaseGoal("zero", 0, 0, nil), NewBaseGoal("negative", -1, 0, nil))
		assert.Nil(t, gs.FindGoal(ws))
		assert.Nil(t, NewGoalSet().FindGoal(ws))
	})

	t.Run("Nil goals are skipped", func(t *testing.T) {
		gs := NewGoalSet(nil, NewBaseGoal("a", 1, 0, nil))
		gs.Add(nil)
		assert.Equal(t, 1, gs.Len())
	})
}
