package o11y

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upside-down-research.com/oss/enemyai/internal/goap"
)

func report(goal string, outcome goap.Outcome, nodes, length int) goap.PlanReport {
	return goap.PlanReport{
		PlanID:        "plan-1",
		Goal:          goal,
		Outcome:       outcome,
		Iterations:    nodes,
		NodesCreated:  nodes,
		NodesReleased: nodes,
		Cost:          length,
		Length:        length,
		Elapsed:       1500 * time.Microsecond,
	}
}

func TestMetrics(t *testing.T) {
	t.Run("Counts plans by goal and outcome", func(t *testing.T) {
		m := NewMetrics("", "")
		m.ObservePlan(report("Kill", goap.OutcomeFound, 4, 3))
		m.ObservePlan(report("Kill", goap.OutcomeFound, 6, 2))
		m.ObservePlan(report("Kill", goap.OutcomeUnreachable, 1, 0))
		m.ObservePlan(report("", goap.OutcomeInvalid, 0, 0))

		assert.Equal(t, 2.0, testutil.ToFloat64(m.plans.WithLabelValues("Kill", "found")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.plans.WithLabelValues("Kill", "unreachable")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.plans.WithLabelValues("none", "invalid")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.planLength.WithLabelValues("Kill")), "length follows the latest plan")
	})

	t.Run("Live node gauge", func(t *testing.T) {
		m := NewMetrics("", "")
		m.TrackLiveNodes(func() int64 { return 7 })
		m.ObservePlan(report("Patrol", goap.OutcomeFound, 2, 1))

		assert.Equal(t, 7.0, testutil.ToFloat64(m.liveNodes))
	})

	t.Run("Registry exposition", func(t *testing.T) {
		m := NewMetrics("", "")
		m.ObservePlan(report("Patrol", goap.OutcomeFound, 2, 1))

		expected := `
# HELP enemyai_plans_total Planning calls by goal and outcome.
# TYPE enemyai_plans_total counter
enemyai_plans_total{goal="Patrol",outcome="found"} 1
`
		require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "enemyai_plans_total"))
	})

	t.Run("Push without gateway is a no-op", func(t *testing.T) {
		assert.NoError(t, NewMetrics("", "").Push(context.Background()))
	})

	t.Run("Wired to a planner", func(t *testing.T) {
		m := NewMetrics("", "")
		ws := goap.NewWorldState(map[string]bool{"done": true}, nil)
		model := goap.NewWorldModel(&ws)
		model.InitActions([]goap.Action{goap.NewBaseAction(goap.ActionSpec{Name: "Do", Cost: 1, Effects: []string{"done"}})})
		planner := goap.NewPlanner(goap.WithObserver(m))
		m.TrackLiveNodes(planner.LiveNodes)

		planner.Plan(model, goap.NewBaseGoal("Done", 1, 0, []string{"done"}))

		assert.Equal(t, 1.0, testutil.ToFloat64(m.plans.WithLabelValues("Done", "found")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.planLength.WithLabelValues("Done")))
		assert.Equal(t, 0.0, testutil.ToFloat64(m.liveNodes))
	})
}

func TestInfluxSink(t *testing.T) {
	t.Run("Disabled without url", func(t *testing.T) {
		assert.Nil(t, NewInfluxSink("", "token", "org", "bucket", "agent"))
	})

	t.Run("Point", func(t *testing.T) {
		sink := NewInfluxSink("http://localhost:8086", "token", "org", "bucket", "agent-7")
		require.NotNil(t, sink)
		defer sink.Close()

		at := time.Unix(1700000000, 0)
		p := sink.Point(report("Kill", goap.OutcomeFound, 4, 3), at)

		assert.Equal(t, "plan", p.Name())
		assert.Equal(t, at, p.Time())

		tags := map[string]string{}
		for _, tag := range p.TagList() {
			tags[tag.Key] = tag.Value
		}
		assert.Equal(t, map[string]string{"agent": "agent-7", "goal": "Kill", "outcome": "found"}, tags)

		fields := map[string]interface{}{}
		for _, f := range p.FieldList() {
			fields[f.Key] = f.Value
		}
		assert.Equal(t, "plan-1", fields["plan_id"])
		assert.EqualValues(t, 4, fields["nodes"])
		assert.EqualValues(t, 3, fields["length"])
		assert.EqualValues(t, 1500, fields["elapsed_us"])
	})
}

type countingObserver struct{ n int }

func (c *countingObserver) ObservePlan(goap.PlanReport) { c.n++ }

func TestFanout(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}
	f := Fanout{a, nil, b}

	f.ObservePlan(report("Kill", goap.OutcomeFound, 1, 1))

	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}
