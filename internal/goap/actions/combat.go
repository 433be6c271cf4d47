package actions

import (
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
)

// AttackEnemy strikes the enemy once prepared. Attacking spends the
// preparation rather than establishing it.
type AttackEnemy struct {
	*goap.BaseAction
}

func NewAttackEnemy() *AttackEnemy {
	return &AttackEnemy{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "AttackEnemy",
			Tag:           "EnemyAction.AttackEnemy",
			Cost:          1,
			Duration:      1.0,
			Interruptible: false,
			NeedsMovement: true,
			Preconditions: []string{facts.PrepareToAttack},
			Effects:       []string{facts.ExecuteKillEnemyMission, facts.EnemyIsAlive},
		}),
	}
}

func (a *AttackEnemy) ApplyEffect(state goap.WorldState) goap.WorldState {
	next := state.Clone()
	if next.CheckState(facts.PrepareToAttack, true) {
		next.SetFact(facts.PrepareToAttack, false)
	}
	return next
}

// EquipMeleeWeapon draws the melee weapon the agent carries.
type EquipMeleeWeapon struct {
	*goap.BaseAction
}

func NewEquipMeleeWeapon() *EquipMeleeWeapon {
	return &EquipMeleeWeapon{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "EquipMeleeWeapon",
			Tag:           "EnemyAction.EquipMeleeWeapon",
			Cost:          1,
			Duration:      1.0,
			Preconditions: []string{facts.HasMelee},
			Effects:       []string{facts.MeleeEquipped},
		}),
	}
}

func (a *EquipMeleeWeapon) ApplyEffect(state goap.WorldState) goap.WorldState {
	return raise(state, facts.MeleeEquipped)
}

// EquipRangeWeapon draws the bow.
type EquipRangeWeapon struct {
	*goap.BaseAction
}

func NewEquipRangeWeapon() *EquipRangeWeapon {
	return &EquipRangeWeapon{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "EquipRangeWeapon",
			Tag:           "EnemyAction.EquipRangeWeapon",
			Cost:          1,
			Duration:      1.0,
			Preconditions: []string{facts.HasBow},
			Effects:       []string{facts.BowEquipped},
		}),
	}
}

func (a *EquipRangeWeapon) ApplyEffect(state goap.WorldState) goap.WorldState {
	return raise(state, facts.BowEquipped)
}

// PrepareToMeleeAttack readies a melee strike. Cheap when the enemy is close,
// expensive when it is far away.
type PrepareToMeleeAttack struct {
	*goap.BaseAction
}

func NewPrepareToMeleeAttack() *PrepareToMeleeAttack {
	return &PrepareToMeleeAttack{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "PrepareToMeleeAttack",
			Tag:           "EnemyAction.PrepareToMeleeAttack",
			Cost:          1,
			Duration:      1.0,
			Interruptible: true,
			Preconditions: []string{facts.MeleeEquipped},
			Effects:       []string{facts.PrepareToAttack},
		}),
	}
}

func (a *PrepareToMeleeAttack) ApplyEffect(state goap.WorldState) goap.WorldState {
	return raise(state, facts.PrepareToAttack)
}

func (a *PrepareToMeleeAttack) Cost(state goap.WorldState) int {
	return proximityCost(state, 1, 4)
}

// PrepareToRangeAttack nocks an arrow. The inverse of the melee cost table:
// cheap at range, expensive up close.
type PrepareToRangeAttack struct {
	*goap.BaseAction
}

func NewPrepareToRangeAttack() *PrepareToRangeAttack {
	return &PrepareToRangeAttack{
		BaseAction: goap.NewBaseAction(goap.ActionSpec{
			Name:          "PrepareToRangeAttack",
			Tag:           "EnemyAction.PrepareToRangeAttack",
			Cost:          2,
			Duration:      1.0,
			Interruptible: true,
			Preconditions: []string{facts.BowEquipped},
			Effects:       []string{facts.PrepareToAttack},
		}),
	}
}

func (a *PrepareToRangeAttack) ApplyEffect(state goap.WorldState) goap.WorldState {
	return raise(state, facts.PrepareToAttack)
}

func (a *PrepareToRangeAttack) Cost(state goap.WorldState) int {
	return proximityCost(state, 4, 1)
}

// proximityCost returns far when the enemy is far away, near when it is near,
// and 2 otherwise. EnemyIsFarAway takes precedence.
func proximityCost(state goap.WorldState, near, far int) int {
	switch {
	case state.CheckState(facts.EnemyIsFarAway, true):
		return far
	case state.CheckState(facts.EnemyIsNear, true):
		return near
	default:
		return 2
	}
}

// raise returns a copy of state with name set to true if it is present and
// false.
func raise(state goap.WorldState, name string) goap.WorldState {
	next := state.Clone()
	if next.CheckState(name, false) {
		next.SetFact(name, true)
	}
	return next
}
