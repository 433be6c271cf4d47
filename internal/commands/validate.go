package commands

import (
	"fmt"

	"upside-down-research.com/oss/enemyai/internal/agent"
	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/validation"
)

// ValidateCommand validates an agent profile
type ValidateCommand struct {
	ProfileFile string `arg:"" name:"profile" help:"Agent profile to validate" type:"path"`
}

// Run executes the validate command
func (cmd *ValidateCommand) Run() error {
	fmt.Printf("📋 Validating agent profile: %s\n\n", cmd.ProfileFile)

	result, err := ValidateProfileFile(cmd.ProfileFile)
	if err != nil {
		return err
	}
	validation.PrintValidationResult(result)

	if !result.IsValid() {
		return fmt.Errorf("validation failed")
	}

	return nil
}

// ValidateProfileFile runs schema and semantic validation on a profile file.
func ValidateProfileFile(path string) (*validation.ValidationResult, error) {
	data, err := config.ReadProfileFile(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("profile file not found: %s", path)
	}

	result := validation.ValidateDocument(data)
	if !result.IsValid() {
		return result, nil
	}

	profile, err := config.ParseProfile(data)
	if err != nil {
		return nil, err
	}
	result.Merge(validation.ValidateProfile(profile, agent.DefaultRegistry()))
	return result, nil
}
