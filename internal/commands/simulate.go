package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/enemyai/internal/agent"
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/progress"
)

// SimulateCommand runs the agent controller for a number of ticks
type SimulateCommand struct {
	Profile string   `name:"profile" short:"p" help:"Agent profile file" type:"path"`
	Ticks   int      `name:"ticks" help:"Number of ticks to run" default:"10"`
	Dt      float64  `name:"dt" help:"Seconds per tick" default:"0.5"`
	Set     []string `name:"set" help:"Override a fact before starting, Name=true|false"`
	Quiet   bool     `name:"quiet" help:"Only print the summary"`
}

// Run executes the simulate command
func (cmd *SimulateCommand) Run() error {
	if cmd.Ticks < 1 {
		return fmt.Errorf("ticks must be at least 1")
	}
	if cmd.Dt <= 0 {
		return fmt.Errorf("dt must be positive")
	}

	ind := progress.NewIndicator(!cmd.Quiet)
	listener := &progressListener{ind: ind}

	s, err := openSession(cmd.Profile, cmd.Set, agent.WithListener(listener))
	if err != nil {
		return err
	}
	defer s.close()

	ctrl := s.controller
	ind.Phase(fmt.Sprintf("Simulating %s (%s)", ctrl.Name(), ctrl.ID()))
	ind.Info(ctrl.State().String())

	ctx := context.Background()
	var lastPlan *goap.Plan
	for i := 1; i <= cmd.Ticks; i++ {
		if err := ctrl.Tick(ctx, cmd.Dt); err != nil {
			ind.Error(fmt.Sprintf("tick %d", i), err)
			ind.Summary(false, "")
			return err
		}
		if p := ctrl.CurrentPlan(); p != nil && p != lastPlan {
			lastPlan = p
			ind.Plan(p.Goal, p.Names(), p.Cost)
		}
		var goalName, actionName string
		if g := ctrl.CurrentGoal(); g != nil {
			goalName = g.Name()
		}
		if a := ctrl.CurrentAction(); a != nil {
			actionName = a.Name()
		}
		ind.Tick(i, goalName, actionName)
	}

	if err := s.metrics.Push(ctx); err != nil {
		log.Warn("Metrics push failed", "error", err)
	}

	ind.Summary(true, "final state: "+ctrl.State().String())
	if cmd.Quiet {
		fmt.Println(ctrl.State().String())
	}
	return nil
}

type progressListener struct {
	ind *progress.Indicator
}

func (l *progressListener) ActionStarted(agentID string, action goap.Action) {
	l.ind.SubStep(fmt.Sprintf("start %s [%s]", action.Name(), action.Tag()))
}

func (l *progressListener) ActionFinished(agentID string, action goap.Action, interrupted bool) {
	if interrupted {
		l.ind.SubStep(fmt.Sprintf("interrupted %s", action.Name()))
		return
	}
	l.ind.SubStep(fmt.Sprintf("finished %s", action.Name()))
}
