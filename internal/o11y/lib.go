package o11y

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"upside-down-research.com/oss/enemyai/internal/goap"
)

// LiveNodesFunc reports the planner's currently allocated search nodes.
type LiveNodesFunc func() int64

// Metrics collects planner metrics in its own prometheus registry and can
// push them to a pushgateway.
type Metrics struct {
	registry   *prometheus.Registry
	plans      *prometheus.CounterVec
	nodes      *prometheus.HistogramVec
	planLength *prometheus.GaugeVec
	liveNodes  prometheus.Gauge
	pusher     *push.Pusher
	live       LiveNodesFunc
}

// NewMetrics creates the planner metrics. pushgatewayURL may be empty, in
// which case Push does nothing.
func NewMetrics(pushgatewayURL, jobName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "enemyai_plans_total",
				Help: "Planning calls by goal and outcome.",
			},
			[]string{"goal", "outcome"}),
		nodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "enemyai_plan_nodes",
				Help:    "Search nodes created per planning call.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"goal"}),
		planLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "enemyai_plan_length",
				Help: "Actions in the most recent plan per goal.",
			},
			[]string{"goal"}),
		liveNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "enemyai_planner_live_nodes",
				Help: "Search nodes allocated and not yet released.",
			}),
	}
	m.registry.MustRegister(m.plans, m.nodes, m.planLength, m.liveNodes)

	if pushgatewayURL != "" {
		if jobName == "" {
			jobName = "enemyai"
		}
		m.pusher = push.New(pushgatewayURL, jobName).Gatherer(m.registry)
	}
	return m
}

// TrackLiveNodes makes the live node gauge follow fn on every observation.
func (m *Metrics) TrackLiveNodes(fn LiveNodesFunc) {
	m.live = fn
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePlan implements goap.PlanObserver.
func (m *Metrics) ObservePlan(r goap.PlanReport) {
	goal := r.Goal
	if goal == "" {
		goal = "none"
	}
	m.plans.WithLabelValues(goal, string(r.Outcome)).Inc()
	m.nodes.WithLabelValues(goal).Observe(float64(r.NodesCreated))
	m.planLength.WithLabelValues(goal).Set(float64(r.Length))
	if m.live != nil {
		m.liveNodes.Set(float64(m.live()))
	}
}

// Push sends the current metrics to the pushgateway.
func (m *Metrics) Push(ctx context.Context) error {
	if m.pusher == nil {
		return nil
	}
	if err := m.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}

// InfluxSink writes one point per planning call to InfluxDB.
type InfluxSink struct {
	client  influxdb2.Client
	writer  api.WriteAPIBlocking
	agentID string
	timeout time.Duration
}

// NewInfluxSink creates a sink, or returns nil when url is empty.
func NewInfluxSink(url, token, org, bucket, agentID string) *InfluxSink {
	if url == "" {
		return nil
	}
	client := influxdb2.NewClient(url, token)
	return &InfluxSink{
		client:  client,
		writer:  client.WriteAPIBlocking(org, bucket),
		agentID: agentID,
		timeout: 2 * time.Second,
	}
}

// Point converts a report into the point ObservePlan writes.
func (s *InfluxSink) Point(r goap.PlanReport, at time.Time) *write.Point {
	return write.NewPoint("plan",
		map[string]string{
			"goal":    r.Goal,
			"outcome": string(r.Outcome),
			"agent":   s.agentID,
		},
		map[string]interface{}{
			"plan_id":    r.PlanID,
			"iterations": r.Iterations,
			"nodes":      r.NodesCreated,
			"cost":       r.Cost,
			"length":     r.Length,
			"elapsed_us": r.Elapsed.Microseconds(),
		},
		at)
}

// ObservePlan implements goap.PlanObserver. Write failures are logged; they
// never reach the planner.
func (s *InfluxSink) ObservePlan(r goap.PlanReport) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.writer.WritePoint(ctx, s.Point(r, time.Now())); err != nil {
		log.Warn("Failed to write plan point", "error", err)
	}
}

// Close releases the client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// Fanout forwards reports to several observers.
type Fanout []goap.PlanObserver

func (f Fanout) ObservePlan(r goap.PlanReport) {
	for _, o := range f {
		if o != nil {
			o.ObservePlan(r)
		}
	}
}
