package agent

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/goap/facts"
)

// Navigator moves the agent to an action's location before the action runs.
type Navigator interface {
	Navigate(ctx context.Context, agentID string, action goap.Action) error
}

// ActionListener is notified as actions start and finish, typically to drive
// animation by the action's tag.
type ActionListener interface {
	ActionStarted(agentID string, action goap.Action)
	ActionFinished(agentID string, action goap.Action, interrupted bool)
}

// DefaultLocations maps built-in actions to the position they travel to.
var DefaultLocations = map[string]string{
	"AttackEnemy":    facts.EnemyLocation,
	"SearchLocation": facts.SearchLocation,
	"Patrol":         facts.PatrolPoint,
}

// Option configures a Controller.
type Option func(*Controller)

// WithID sets the agent id. A random one is used otherwise.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithName sets the agent's display name.
func WithName(name string) Option {
	return func(c *Controller) {
		c.name = name
	}
}

func WithNavigator(n Navigator) Option {
	return func(c *Controller) {
		c.navigator = n
	}
}

func WithListener(l ActionListener) Option {
	return func(c *Controller) {
		c.listener = l
	}
}

// WithReplanInterval replans every interval seconds while a plan runs. Zero
// replans only when the agent is idle.
func WithReplanInterval(seconds float64) Option {
	return func(c *Controller) {
		c.replanInterval = seconds
	}
}

// WithReplanOnGoalChange replans as soon as a different goal wins.
func WithReplanOnGoalChange(enabled bool) Option {
	return func(c *Controller) {
		c.replanOnGoalChange = enabled
	}
}

// WithLocations overrides which position each action travels to.
func WithLocations(locations map[string]string) Option {
	return func(c *Controller) {
		c.locations = locations
	}
}

// Controller runs one agent: it picks the most valuable goal, asks the
// planner for a plan and executes the plan an action at a time, applying each
// action's effect to the live WorldState when the action completes or is
// interrupted.
//
// A Controller is driven from a single goroutine, one Tick per frame.
type Controller struct {
	id   string
	name string

	state   goap.WorldState
	model   *goap.WorldModel
	planner *goap.Planner
	goals   *goap.GoalSet

	currentGoal goap.Goal
	plan        *goap.Plan
	step        int
	started     bool
	elapsed     float64
	sinceReplan float64

	replanInterval     float64
	replanOnGoalChange bool
	locations          map[string]string
	navigator          Navigator
	listener           ActionListener
}

// New creates a Controller owning state. The actions become the agent's
// library.
func New(state goap.WorldState, actions []goap.Action, goals []goap.Goal, planner *goap.Planner, opts ...Option) *Controller {
	c := &Controller{
		id:                 uuid.NewString(),
		state:              state,
		planner:            planner,
		goals:              goap.NewGoalSet(goals...),
		replanInterval:     1.0,
		replanOnGoalChange: true,
		locations:          DefaultLocations,
	}
	if c.planner == nil {
		c.planner = goap.NewPlanner()
	}
	for _, opt := range opts {
		opt(c)
	}
	c.model = goap.NewWorldModel(&c.state)
	c.model.InitActions(actions)
	return c
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Name() string {
	return c.name
}

// State returns a copy of the live WorldState.
func (c *Controller) State() goap.WorldState {
	return c.state.Clone()
}

func (c *Controller) Model() *goap.WorldModel {
	return c.model
}

func (c *Controller) Planner() *goap.Planner {
	return c.planner
}

func (c *Controller) Goals() *goap.GoalSet {
	return c.goals
}

// SetFact pushes a sensor update. Unknown facts are ignored with a warning.
func (c *Controller) SetFact(name string, value bool) bool {
	return c.state.SetFact(name, value)
}

// SetPosition pushes a sensor update. Unknown positions are ignored with a
// warning.
func (c *Controller) SetPosition(name string, value goap.Vector) bool {
	return c.state.SetPosition(name, value)
}

// FindGoal returns the goal with the highest current value, or nil.
func (c *Controller) FindGoal() goap.Goal {
	return c.goals.FindGoal(c.state)
}

// CallPlanner plans for goal and resets the WorldModel for the next call.
func (c *Controller) CallPlanner(goal goap.Goal) *goap.Plan {
	if goal == nil {
		log.Warn("Goal == nil, not planning", "agent", c.id)
		return &goap.Plan{Actions: []goap.Action{}}
	}
	plan := c.planner.Plan(c.model, goal)
	c.model.Initialize()
	return plan
}

// ApplyActionEffect replaces the live state with action's projected effect.
func (c *Controller) ApplyActionEffect(action goap.Action) {
	c.state = action.ApplyEffect(c.state)
}

func (c *Controller) CurrentGoal() goap.Goal {
	return c.currentGoal
}

func (c *Controller) CurrentPlan() *goap.Plan {
	return c.plan
}

// CurrentAction returns the action being executed, or nil when idle.
func (c *Controller) CurrentAction() goap.Action {
	if c.plan == nil || c.step >= len(c.plan.Actions) {
		return nil
	}
	return c.plan.Actions[c.step]
}

// Idle reports whether the agent has nothing to execute.
func (c *Controller) Idle() bool {
	return c.CurrentAction() == nil
}

// Interrupt stops the running action if it allows it, applying its effect
// and dropping the rest of the plan. It returns false when the action cannot
// be interrupted.
func (c *Controller) Interrupt() bool {
	action := c.CurrentAction()
	if action == nil {
		return true
	}
	if c.started && !action.Interruptible() {
		log.Debug("Action cannot be interrupted", "agent", c.id, "action", action.Name())
		return false
	}
	if c.started {
		c.ApplyActionEffect(action)
		if c.listener != nil {
			c.listener.ActionFinished(c.id, action, true)
		}
	}
	log.Info("Plan interrupted", "agent", c.id, "action", action.Name())
	c.clearPlan()
	return true
}

func (c *Controller) clearPlan() {
	c.plan = nil
	c.step = 0
	c.started = false
	c.elapsed = 0
}

// Tick advances the agent by dt seconds.
func (c *Controller) Tick(ctx context.Context, dt float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sinceReplan += dt

	goal := c.FindGoal()
	if c.shouldReplan(goal) && c.Interrupt() {
		c.replan(goal)
	}

	action := c.CurrentAction()
	if action == nil {
		return nil
	}

	if !c.started {
		if err := c.start(ctx, action); err != nil {
			c.clearPlan()
			return err
		}
	}

	c.elapsed += dt
	if c.elapsed >= action.Duration() {
		c.ApplyActionEffect(action)
		if c.listener != nil {
			c.listener.ActionFinished(c.id, action, false)
		}
		log.Debug("Action completed", "agent", c.id, "action", action.Name(), "state", c.state.String())
		c.step++
		c.started = false
		c.elapsed = 0
	}
	return nil
}

func (c *Controller) shouldReplan(goal goap.Goal) bool {
	if c.Idle() {
		if goal == nil {
			return false
		}
		// The last search for this goal came back empty; wait for the
		// interval before trying again.
		if goal == c.currentGoal && c.plan != nil && c.plan.Empty() {
			return c.sinceReplan >= c.replanInterval
		}
		return true
	}
	if c.replanOnGoalChange && goal != c.currentGoal {
		return true
	}
	return c.replanInterval > 0 && c.sinceReplan >= c.replanInterval
}

func (c *Controller) replan(goal goap.Goal) {
	c.sinceReplan = 0
	c.currentGoal = goal
	if goal == nil {
		c.clearPlan()
		return
	}
	c.plan = c.CallPlanner(goal)
	c.step = 0
	c.started = false
	c.elapsed = 0
	if c.plan.Empty() {
		log.Info("No plan, agent idles", "agent", c.id, "goal", goal.Name())
	}
}

func (c *Controller) start(ctx context.Context, action goap.Action) error {
	if action.NeedsMovement() {
		if posName, ok := c.locations[action.Name()]; ok {
			if pos, found := c.state.GetPosition(posName); found {
				action.SetLocation(pos)
			}
		}
		if c.navigator != nil {
			if err := c.navigator.Navigate(ctx, c.id, action); err != nil {
				return fmt.Errorf("navigation for %s failed: %w", action.Name(), err)
			}
		}
	}
	if c.listener != nil {
		c.listener.ActionStarted(c.id, action)
	}
	log.Debug("Action started", "agent", c.id, "action", action.Name(), "tag", action.Tag())
	c.started = true
	c.elapsed = 0
	return nil
}
