// Package observability provides lifecycle observers for the workflow
// engine, including a Prometheus implementation suitable for exposing on
// /metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quorumbank/teller/pkg/domain"
)

// PrometheusObserver implements ports.Observer backed by Prometheus
// collectors. All collectors are registered on construction.
type PrometheusObserver struct {
	turnsStarted  prometheus.Counter
	turnsFinished *prometheus.CounterVec
	turnDuration  prometheus.Histogram
	stepsAdvanced *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	toolDuration  prometheus.Histogram
}

// NewPrometheusObserver creates and registers the collectors on reg.
// Pass prometheus.DefaultRegisterer for the global registry.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		turnsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "teller_turns_started_total",
			Help: "Turns accepted for processing.",
		}),
		turnsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teller_turns_finished_total",
			Help: "Turns finished, by outcome kind.",
		}, []string{"outcome"}),
		turnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teller_turn_duration_seconds",
			Help:    "Wall time of one processed turn.",
			Buckets: prometheus.DefBuckets,
		}),
		stepsAdvanced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teller_steps_total",
			Help: "State machine step transitions, by destination step.",
		}, []string{"to"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "teller_tool_invocations_total",
			Help: "Tool invocations, by tool and status.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "teller_tool_duration_seconds",
			Help:    "Wall time of one tool invocation.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		o.turnsStarted,
		o.turnsFinished,
		o.turnDuration,
		o.stepsAdvanced,
		o.toolCalls,
		o.toolDuration,
	)
	return o
}

func (o *PrometheusObserver) TurnStarted(threadID string) {
	o.turnsStarted.Inc()
}

func (o *PrometheusObserver) StepAdvanced(threadID string, from, to domain.Step) {
	o.stepsAdvanced.WithLabelValues(string(to)).Inc()
}

func (o *PrometheusObserver) ToolInvoked(threadID, tool string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.toolCalls.WithLabelValues(tool, status).Inc()
	o.toolDuration.Observe(elapsed.Seconds())
}

func (o *PrometheusObserver) TurnFinished(threadID string, kind domain.OutcomeKind, elapsed time.Duration) {
	o.turnsFinished.WithLabelValues(string(kind)).Inc()
	o.turnDuration.Observe(elapsed.Seconds())
}
