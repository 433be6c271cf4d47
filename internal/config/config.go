package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/enemyai/internal/goap"
)

// Profile is the designer-authored configuration of one agent: its world
// state schema, the actions and goals it may use, and runtime tuning.
type Profile struct {
	Agent      AgentConfig            `yaml:"agent"`
	Facts      map[string]bool        `yaml:"facts"`
	Positions  map[string]goap.Vector `yaml:"positions"`
	Actions    []string               `yaml:"actions"`
	Goals      []string               `yaml:"goals"`
	Planner    PlannerConfig          `yaml:"planner"`
	Controller ControllerConfig       `yaml:"controller"`
	Metrics    MetricsConfig          `yaml:"metrics"`
	Influx     InfluxConfig           `yaml:"influx"`
}

// AgentConfig identifies the agent
type AgentConfig struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"` // generated when empty
}

// PlannerConfig holds search limits
type PlannerConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// ControllerConfig holds replanning cadence
type ControllerConfig struct {
	ReplanIntervalSec  float64 `yaml:"replan_interval_sec"`
	ReplanOnGoalChange bool    `yaml:"replan_on_goal_change"`
}

// MetricsConfig holds prometheus pushgateway settings
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url"`
	JobName        string `yaml:"job_name"`
}

// InfluxConfig holds the plan event sink settings
type InfluxConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"` // supports ${ENV_VAR} interpolation
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

// DefaultProfile returns a melee grunt that can patrol, investigate and fight.
func DefaultProfile() *Profile {
	return &Profile{
		Agent: AgentConfig{
			Name: "grunt",
		},
		Facts: map[string]bool{
			"HasMelee":                    true,
			"HasBow":                      false,
			"HasBugle":                    false,
			"MeleeEquipped":               false,
			"BowEquipped":                 false,
			"PrepareToAttack":             false,
			"EnemyIsAlive":                false,
			"EnemyIsNear":                 false,
			"EnemyIsFarAway":              false,
			"LostEnemy":                   false,
			"NeedToPatrol":                true,
			"ExecuteKillEnemyMission":     false,
			"ExecuteInvestigationMission": false,
			"ExecutePatrolMission":        true,
		},
		Positions: map[string]goap.Vector{
			"EnemyLocation":  {},
			"SearchLocation": {},
			"PatrolPoint":    {},
		},
		Actions: []string{
			"AttackEnemy",
			"EquipMeleeWeapon",
			"PrepareToMeleeAttack",
			"SearchLocation",
			"Patrol",
			"Stand",
		},
		Goals: []string{
			"ExecuteKillEnemyMission",
			"ExecuteInvestigationMission",
			"ExecutePatrolMission",
		},
		Planner: PlannerConfig{
			MaxIterations: goap.DefaultMaxIterations,
		},
		Controller: ControllerConfig{
			ReplanIntervalSec:  1.0,
			ReplanOnGoalChange: true,
		},
		Metrics: MetricsConfig{
			JobName: "enemyai",
		},
	}
}

// LoadProfile loads a profile from a YAML file. Fields the file leaves out
// keep their defaults; an empty path or a missing file yields the defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := ReadProfileFile(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return withIdentity(DefaultProfile()), nil
	}
	return ParseProfile(data)
}

// ReadProfileFile reads a profile file with environment variables expanded.
// It returns nil data when path is empty or does not exist.
func ReadProfileFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	return []byte(os.ExpandEnv(string(data))), nil
}

// ParseProfile parses YAML profile data over the defaults. The fact and
// position schema replace the defaults wholesale when present, since the
// schema is authored per agent.
func ParseProfile(data []byte) (*Profile, error) {
	cfg := DefaultProfile()

	var raw struct {
		Facts     map[string]bool        `yaml:"facts"`
		Positions map[string]goap.Vector `yaml:"positions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}
	if raw.Facts != nil {
		cfg.Facts = nil
	}
	if raw.Positions != nil {
		cfg.Positions = nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	return withIdentity(cfg), nil
}

func withIdentity(cfg *Profile) *Profile {
	if cfg.Agent.ID == "" {
		cfg.Agent.ID = uuid.NewString()
	}
	return cfg
}

// SaveProfile saves a profile to a YAML file
func SaveProfile(cfg *Profile, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	return nil
}

// WorldState builds the agent's initial WorldState from the profile schema.
func (p *Profile) WorldState() goap.WorldState {
	return goap.NewWorldState(p.Facts, p.Positions)
}

// ExampleProfile returns a commented example profile
func ExampleProfile() string {
	return `# Enemy AI agent profile
# Environment variables like ${INFLUX_TOKEN} are expanded before parsing.

agent:
  # Display name, used in logs and metrics
  name: archer

  # Stable id; generated at load time when empty
  id: ""

# World state schema and initial values. Only facts listed here exist;
# sensor updates for other names are ignored with a warning.
facts:
  HasMelee: true
  HasBow: true
  HasBugle: false
  MeleeEquipped: false
  BowEquipped: false
  PrepareToAttack: false
  EnemyIsAlive: true
  EnemyIsNear: false
  EnemyIsFarAway: true
  LostEnemy: false
  NeedToPatrol: true
  ExecuteKillEnemyMission: true
  ExecuteInvestigationMission: false
  ExecutePatrolMission: true

positions:
  EnemyLocation: {x: 1200, y: -340, z: 0}
  SearchLocation: {x: 0, y: 0, z: 0}
  PatrolPoint: {x: 100, y: 100, z: 0}

# Action library, by registered name
actions:
  - AttackEnemy
  - EquipMeleeWeapon
  - EquipRangeWeapon
  - PrepareToMeleeAttack
  - PrepareToRangeAttack
  - RequestHelp
  - SearchLocation
  - Patrol
  - Stand

# Goals this agent may pursue, by registered name
goals:
  - ExecuteKillEnemyMission
  - ExecuteInvestigationMission
  - ExecutePatrolMission

planner:
  # Nodes popped before a search gives up
  max_iterations: 1000

controller:
  # Seconds between replans while a plan is running
  replan_interval_sec: 1.0

  # Replan as soon as a different goal wins
  replan_on_goal_change: true

metrics:
  # Prometheus pushgateway; leave empty to disable pushing
  pushgateway_url: ""
  job_name: enemyai

influx:
  # InfluxDB plan event sink; leave url empty to disable
  url: ""
  token: ${INFLUX_TOKEN}
  org: ""
  bucket: ""
`
}
