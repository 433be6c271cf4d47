package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/enemyai/internal/goap"
)

// PlanCommand computes one plan for an agent profile
type PlanCommand struct {
	Profile string   `name:"profile" short:"p" help:"Agent profile file" type:"path"`
	Goal    string   `name:"goal" help:"Goal to plan for (default: highest valued goal)"`
	Set     []string `name:"set" help:"Override a fact before planning, Name=true|false"`
	Trace   bool     `name:"trace" help:"Print the world state after each action"`
}

// Run executes the plan command
func (cmd *PlanCommand) Run() error {
	s, err := openSession(cmd.Profile, cmd.Set)
	if err != nil {
		return err
	}
	defer s.close()

	ctrl := s.controller
	goal, err := goalByName(ctrl, cmd.Goal)
	if err != nil {
		return err
	}
	if goal == nil {
		fmt.Println("No goal has a value above zero; the agent idles.")
		return nil
	}

	fmt.Printf("🎯 Goal: %s (value %.1f)\n", goal.Name(), goal.CurrentValue(ctrl.State()))
	plan := ctrl.CallPlanner(goal)
	fmt.Println(plan.String())

	if cmd.Trace && !plan.Empty() {
		fmt.Println()
		fmt.Print(FormatTrace(ctrl.State(), plan))
	}

	if err := s.metrics.Push(context.Background()); err != nil {
		log.Warn("Metrics push failed", "error", err)
	}
	return nil
}

// FormatTrace applies each plan action in order from start and renders the
// facts that changed at every step.
func FormatTrace(start goap.WorldState, plan *goap.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "start: %s\n", start.String())
	state := start
	for i, action := range plan.Actions {
		next := action.ApplyEffect(state)
		changes := []string{}
		for _, name := range state.Diff(next) {
			v, _ := next.GetFact(name)
			changes = append(changes, fmt.Sprintf("%s=%v", name, v))
		}
		if len(changes) == 0 {
			changes = append(changes, "no change")
		}
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, action.Name(), strings.Join(changes, ", "))
		state = next
	}
	fmt.Fprintf(&b, "end: %s\n", state.String())
	return b.String()
}
