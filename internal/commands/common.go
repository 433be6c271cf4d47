package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"upside-down-research.com/oss/enemyai/internal/agent"
	"upside-down-research.com/oss/enemyai/internal/config"
	"upside-down-research.com/oss/enemyai/internal/goap"
	"upside-down-research.com/oss/enemyai/internal/o11y"
)

// FactOverride is a --set Fact=bool flag value.
type FactOverride struct {
	Name  string
	Value bool
}

// ParseFactOverrides parses Name=bool pairs.
func ParseFactOverrides(raw []string) ([]FactOverride, error) {
	overrides := make([]FactOverride, 0, len(raw))
	for _, r := range raw {
		name, value, ok := strings.Cut(r, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid fact override %q: want Name=true|false", r)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid fact override %q: %w", r, err)
		}
		overrides = append(overrides, FactOverride{Name: strings.TrimSpace(name), Value: b})
	}
	return overrides, nil
}

// session is a loaded profile wired to a controller and its observers.
type session struct {
	profile    *config.Profile
	controller *agent.Controller
	metrics    *o11y.Metrics
	influx     *o11y.InfluxSink
}

func openSession(profilePath string, sets []string, opts ...agent.Option) (*session, error) {
	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	overrides, err := ParseFactOverrides(sets)
	if err != nil {
		return nil, err
	}

	s := &session{
		profile: profile,
		metrics: o11y.NewMetrics(profile.Metrics.PushgatewayURL, profile.Metrics.JobName),
		influx: o11y.NewInfluxSink(profile.Influx.URL, profile.Influx.Token,
			profile.Influx.Org, profile.Influx.Bucket, profile.Agent.ID),
	}

	observers := o11y.Fanout{s.metrics}
	if s.influx != nil {
		observers = append(observers, s.influx)
	}

	ctrl, err := agent.FromProfile(profile, agent.DefaultRegistry(), observers, opts...)
	if err != nil {
		s.close()
		return nil, err
	}
	s.metrics.TrackLiveNodes(ctrl.Planner().LiveNodes)
	s.controller = ctrl

	for _, o := range overrides {
		if !ctrl.SetFact(o.Name, o.Value) {
			log.Warn("Fact override ignored", "fact", o.Name)
		}
	}
	return s, nil
}

func (s *session) close() {
	if s.influx != nil {
		s.influx.Close()
	}
}

// goalByName returns the controller goal named name, or the highest valued
// goal when name is empty.
func goalByName(ctrl *agent.Controller, name string) (goap.Goal, error) {
	if name == "" {
		return ctrl.FindGoal(), nil
	}
	for _, g := range ctrl.Goals().Goals() {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("goal %q is not in the profile", name)
}
