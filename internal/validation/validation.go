package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/goap"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
	Fix     string // Suggested fix
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Message)
	if e.Fix != "" {
		msg += fmt.Sprintf("\n  Fix: %s", e.Fix)
	}
	return msg
}

// ValidationResult holds validation results
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if there are no errors
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError adds a validation error
func (v *ValidationResult) AddError(field, message, fix string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
		Fix:     fix,
	})
}

// AddWarning adds a validation warning
func (v *ValidationResult) AddWarning(field, message, fix string) {
	v.Warnings = append(v.Warnings, ValidationError{
		Field:   field,
		Message: message,
		Fix:     fix,
	})
}

const profileSchemaURL = "enemyai://profile.schema.json"

const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "agent": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string"},
        "id": {"type": "string"}
      }
    },
    "facts": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    },
    "positions": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "x": {"type": "number"},
          "y": {"type": "number"},
          "z": {"type": "number"}
        }
      }
    },
    "actions": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "goals": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "planner": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "max_iterations": {"type": "integer", "minimum": 1}
      }
    },
    "controller": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "replan_interval_sec": {"type": "number", "minimum": 0},
        "replan_on_goal_change": {"type": "boolean"}
      }
    },
    "metrics": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "pushgateway_url": {"type": "string"},
        "job_name": {"type": "string"}
      }
    },
    "influx": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "url": {"type": "string"},
        "token": {"type": "string"},
        "org": {"type": "string"},
        "bucket": {"type": "string"}
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func schema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(profileSchemaURL, strings.NewReader(profileSchema)); err != nil {
		return nil, fmt.Errorf("failed to load profile schema: %w", err)
	}
	s, err := compiler.Compile(profileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}
	compiledSchema = s
	return s, nil
}

// ValidateDocument checks raw profile YAML against the profile schema.
func ValidateDocument(data []byte) *ValidationResult {
	result := &ValidationResult{}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		result.AddError("profile", fmt.Sprintf("invalid YAML: %v", err), "fix the YAML syntax")
		return result
	}
	if doc == nil {
		return result
	}

	// Round-trip through JSON so the validator sees JSON types.
	encoded, err := json.Marshal(doc)
	if err != nil {
		result.AddError("profile", fmt.Sprintf("cannot convert to JSON: %v", err), "use string keys only")
		return result
	}
	var instance interface{}
	if err := json.Unmarshal(encoded, &instance); err != nil {
		result.AddError("profile", fmt.Sprintf("cannot convert to JSON: %v", err), "")
		return result
	}

	s, err := schema()
	if err != nil {
		result.AddError("schema", err.Error(), "")
		return result
	}
	if err := s.Validate(instance); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range leafCauses(verr) {
				field := strings.TrimPrefix(strings.ReplaceAll(cause.InstanceLocation, "/", "."), ".")
				if field == "" {
					field = "profile"
				}
				result.AddError(field, cause.Message, "see 'enemyai profile init' for the expected layout")
			}
		} else {
			result.AddError("profile", err.Error(), "")
		}
	}
	return result
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var out []*jsonschema.ValidationError
	for _, c := range err.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}

// ValidateProfile checks a parsed profile against the registry: every action
// and goal must resolve, and the facts they reference should exist in the
// profile's schema.
func ValidateProfile(p *config.Profile, registry *goap.Registry) *ValidationResult {
	result := &ValidationResult{}

	if len(p.Facts) == 0 {
		result.AddError("facts",
			"no facts defined",
			"author the agent's world state under 'facts'")
	}

	if len(p.Actions) == 0 {
		result.AddError("actions",
			"action library is empty",
			"list at least one action; the planner cannot produce plans without one")
	}
	if len(p.Goals) == 0 {
		result.AddWarning("goals",
			"no goals defined",
			"the agent will stay idle")
	}

	seen := map[string]bool{}
	for i, name := range p.Actions {
		field := fmt.Sprintf("actions[%d]", i)
		if seen[name] {
			result.AddWarning(field, fmt.Sprintf("duplicate action '%s'", name), "remove the duplicate")
		}
		seen[name] = true
		if !registry.HasAction(name) {
			result.AddError(field,
				fmt.Sprintf("unknown action '%s'", name),
				fmt.Sprintf("use one of: %s", strings.Join(registry.ActionNames(), ", ")))
		}
	}
	for i, name := range p.Goals {
		if !registry.HasGoal(name) {
			result.AddError(fmt.Sprintf("goals[%d]", i),
				fmt.Sprintf("unknown goal '%s'", name),
				fmt.Sprintf("use one of: %s", strings.Join(registry.GoalNames(), ", ")))
		}
	}

	// Facts an action or goal references but the schema lacks are silently
	// ignored at runtime; surface them here.
	if actions, err := registry.BuildActions(filterKnown(p.Actions, registry.HasAction)); err == nil {
		for _, a := range actions {
			for _, name := range append(append([]string{}, a.Preconditions()...), a.Effects()...) {
				if _, ok := p.Facts[name]; !ok {
					result.AddWarning("facts",
						fmt.Sprintf("action '%s' references missing fact '%s'", a.Name(), name),
						fmt.Sprintf("add '%s' under facts", name))
				}
			}
		}
	}
	if goals, err := registry.BuildGoals(filterKnown(p.Goals, registry.HasGoal)); err == nil {
		for _, g := range goals {
			for _, name := range g.Targets() {
				if _, ok := p.Facts[name]; !ok {
					result.AddWarning("facts",
						fmt.Sprintf("goal '%s' references missing fact '%s'", g.Name(), name),
						fmt.Sprintf("add '%s' under facts", name))
				}
			}
		}
	}

	if p.Planner.MaxIterations < 1 {
		result.AddError("planner.max_iterations",
			"must be at least 1",
			"set planner.max_iterations to a positive number")
	}
	if p.Controller.ReplanIntervalSec < 0 {
		result.AddError("controller.replan_interval_sec",
			"must not be negative",
			"use 0 to replan only when idle")
	}

	validateURL(result, "metrics.pushgateway_url", p.Metrics.PushgatewayURL)
	validateURL(result, "influx.url", p.Influx.URL)
	if p.Influx.URL != "" {
		if p.Influx.Token == "" {
			result.AddError("influx.token", "token not set", "export INFLUX_TOKEN or set influx.token")
		}
		if p.Influx.Org == "" || p.Influx.Bucket == "" {
			result.AddError("influx", "org and bucket are required when url is set", "set influx.org and influx.bucket")
		}
	}

	return result
}

func validateURL(result *ValidationResult, field, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.AddError(field,
			fmt.Sprintf("invalid URL '%s'", raw),
			"use an absolute URL like http://localhost:9091")
	}
}

func filterKnown(names []string, known func(string) bool) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if known(n) {
			out = append(out, n)
		}
	}
	return out
}

// Merge appends other's errors and warnings to v.
func (v *ValidationResult) Merge(other *ValidationResult) {
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
}

// PrintValidationResult prints validation results in a user-friendly format
func PrintValidationResult(result *ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Println("❌ Validation Errors:")
		for _, err := range result.Errors {
			fmt.Printf("  • %s\n", err.Error())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Println("⚠️  Warnings:")
		for _, warn := range result.Warnings {
			fmt.Printf("  • %s: %s\n", warn.Field, warn.Message)
			if warn.Fix != "" {
				fmt.Printf("    Suggestion: %s\n", warn.Fix)
			}
		}
		fmt.Println()
	}

	if result.IsValid() && len(result.Warnings) == 0 {
		fmt.Println("✓ All validations passed")
	}
}
