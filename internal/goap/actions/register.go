// Package actions holds the built-in enemy actions.
package actions

import "upside-down-research.com/oss/enemyai/internal/goap"

// Register installs every built-in action into r.
func Register(r *goap.Registry) {
	r.RegisterAction("AttackEnemy", func() goap.Action { return NewAttackEnemy() })
	r.RegisterAction("EquipMeleeWeapon", func() goap.Action { return NewEquipMeleeWeapon() })
	r.RegisterAction("EquipRangeWeapon", func() goap.Action { return NewEquipRangeWeapon() })
	r.RegisterAction("Patrol", func() goap.Action { return NewPatrol() })
	r.RegisterAction("PrepareToMeleeAttack", func() goap.Action { return NewPrepareToMeleeAttack() })
	r.RegisterAction("PrepareToRangeAttack", func() goap.Action { return NewPrepareToRangeAttack() })
	r.RegisterAction("RequestHelp", func() goap.Action { return NewRequestHelp() })
	r.RegisterAction("SearchLocation", func() goap.Action { return NewSearchLocation() })
	r.RegisterAction("Stand", func() goap.Action { return NewStand() })
}
