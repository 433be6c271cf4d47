package commands

import (
	"fmt"

	"upside-down-research.com/oss/enemyai/internal/agent"
	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/validation"
)

// DoctorCommand runs profile diagnostics
type DoctorCommand struct {
	Profile string `name:"profile" short:"p" help:"Agent profile file" type:"path"`
}

// Run executes the doctor command
func (cmd *DoctorCommand) Run() error {
	fmt.Println("🏥 Running enemyai diagnostics...")
	fmt.Println()

	allOk := true

	cfg, err := config.LoadProfile(cmd.Profile)
	if err != nil {
		fmt.Printf("❌ Profile: %v\n", err)
		allOk = false
	} else {
		result := validation.ValidateProfile(cfg, agent.DefaultRegistry())
		if result.IsValid() {
			fmt.Println("✓ Profile: valid")
		} else {
			fmt.Println("❌ Profile: has errors")
			for _, e := range result.Errors {
				fmt.Printf("  • %s\n", e.Error())
			}
			allOk = false
		}
		if len(result.Warnings) > 0 {
			fmt.Println("⚠️  Profile: has warnings")
			for _, w := range result.Warnings {
				fmt.Printf("  • %s: %s\n", w.Field, w.Message)
			}
		}
	}

	if cfg != nil {
		ctrl, err := agent.FromProfile(cfg, agent.DefaultRegistry(), nil)
		if err != nil {
			fmt.Printf("❌ Agent: %v\n", err)
			allOk = false
		} else {
			fmt.Printf("✓ Agent: %d actions, %d goals\n", len(ctrl.Model().Actions()), ctrl.Goals().Len())
			if goal := ctrl.FindGoal(); goal != nil {
				plan := ctrl.CallPlanner(goal)
				fmt.Printf("✓ Current goal: %s, plan of %d actions\n", goal.Name(), len(plan.Actions))
			} else {
				fmt.Println("⚠️  Current goal: none (all goal values are zero)")
			}
		}

		if cfg.Metrics.PushgatewayURL != "" {
			fmt.Printf("✓ Pushgateway: %s\n", cfg.Metrics.PushgatewayURL)
		} else {
			fmt.Println("• Pushgateway: disabled")
		}
		if cfg.Influx.URL != "" {
			fmt.Printf("✓ InfluxDB: %s (%s/%s)\n", cfg.Influx.URL, cfg.Influx.Org, cfg.Influx.Bucket)
		} else {
			fmt.Println("• InfluxDB: disabled")
		}
	}

	fmt.Println()
	if allOk {
		fmt.Println("🎉 All systems ready!")
		return nil
	} else {
		fmt.Println("⚠️  Some issues found - please fix before running")
		return fmt.Errorf("validation failed")
	}
}
