package commands

import (
	"fmt"
	"os"

	"upside-down-research.com/oss/enemyai/internal/config"
)

// ProfileCommand manages agent profiles
type ProfileCommand struct {
	Init ProfileInitCommand `cmd:"" help:"Create a new agent profile"`
}

// ProfileInitCommand creates a new profile file
type ProfileInitCommand struct {
	Output string `name:"output" help:"Output path for the profile" default:"agent.yaml"`
	Force  bool   `name:"force" help:"Overwrite existing file"`
}

// Run executes the profile init command
func (cmd *ProfileInitCommand) Run() error {
	// Check if file exists
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("profile already exists: %s (use --force to overwrite)", cmd.Output)
	}

	err := os.WriteFile(cmd.Output, []byte(config.ExampleProfile()), 0644)
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}

	fmt.Printf("✓ Created agent profile: %s\n", cmd.Output)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the facts, actions and goals for your agent")
	fmt.Println("  2. Run 'enemyai validate " + cmd.Output + "' to check it")
	fmt.Println("  3. Run 'enemyai plan -p " + cmd.Output + " --trace' to see what it would do")

	return nil
}
