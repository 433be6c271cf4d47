// Package facts names the world state facts shared by the built-in actions
// and goals.
package facts

const (
	HasMelee      = "HasMelee"
	HasBow        = "HasBow"
	HasBugle      = "HasBugle"
	MeleeEquipped = "MeleeEquipped"
	BowEquipped   = "BowEquipped"

	PrepareToAttack = "PrepareToAttack"
	EnemyIsAlive    = "EnemyIsAlive"
	EnemyIsNear     = "EnemyIsNear"
	EnemyIsFarAway  = "EnemyIsFarAway"
	LostEnemy       = "LostEnemy"
	NeedToPatrol    = "NeedToPatrol"

	ExecuteKillEnemyMission     = "ExecuteKillEnemyMission"
	ExecuteInvestigationMission = "ExecuteInvestigationMission"
	ExecutePatrolMission        = "ExecutePatrolMission"
)

// Positions.
const (
	EnemyLocation  = "EnemyLocation"
	SearchLocation = "SearchLocation"
	PatrolPoint    = "PatrolPoint"
)

// All lists every built-in fact name.
var All = []string{
	HasMelee, HasBow, HasBugle, MeleeEquipped, BowEquipped,
	PrepareToAttack, EnemyIsAlive, EnemyIsNear, EnemyIsFarAway, LostEnemy, NeedToPatrol,
	ExecuteKillEnemyMission, ExecuteInvestigationMission, ExecutePatrolMission,
}
