package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"upside-down-research.com/oss/enemyai/internal/commands"
)

var CLI struct {
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`

	Plan     commands.PlanCommand     `cmd:"" help:"Compute a plan for an agent profile"`
	Simulate commands.SimulateCommand `cmd:"" help:"Run the agent controller for a number of ticks"`
	Validate commands.ValidateCommand `cmd:"" help:"Validate an agent profile"`
	Doctor   commands.DoctorCommand   `cmd:"" help:"Run profile diagnostics"`
	Profile  commands.ProfileCommand  `cmd:"" help:"Manage agent profiles"`
}

const banner = `
  ___                          _    ___
 | __|_ _  ___ _ __ _  _  _   /_\  |_ _|
 | _|| ' \/ -_) '  \ || |    / _ \  | |
 |___|_||_\___|_|_|_\_, |   /_/ \_\|___|
                    |__/

Goal-oriented action planning for enemy agents
`

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("enemyai"),
		kong.Description("EnemyAI - goal-oriented action planner\n\nPlan and simulate enemy agents from YAML profiles."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	level, err := log.ParseLevel(CLI.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	// Show banner for main help
	if ctx.Command() == "" {
		fmt.Print(banner + "\n")
		fmt.Println("Quick start:")
		fmt.Println("  $ enemyai profile init                    # Create agent.yaml")
		fmt.Println("  $ enemyai validate agent.yaml             # Check the profile")
		fmt.Println("  $ enemyai plan -p agent.yaml --trace      # Show the current plan")
		fmt.Println("  $ enemyai simulate -p agent.yaml --ticks 20")
		fmt.Println()
		fmt.Println("Run 'enemyai --help' for all commands")
		os.Exit(0)
	}

	err = ctx.Run()
	if err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
