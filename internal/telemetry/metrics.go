package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"e2esource/internal/protocol"
)

const namespace = "e2esource"

// Metrics counts what a run hands to the orchestrator.
type Metrics struct {
	Messages      *prometheus.CounterVec
	Failures      prometheus.Counter
	Checkpoint    prometheus.Gauge
	CheckpointErr prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_emitted_total",
			Help:      "Messages emitted by the source, by type.",
		}, []string{"type"}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduled_failures_total",
			Help:      "Runs that ended with the scheduled failure.",
		}),
		Checkpoint: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkpoint_value",
			Help:      "column1 of the last persisted state message.",
		}),
		CheckpointErr: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkpoint_save_errors_total",
			Help:      "Failed attempts to persist a state message.",
		}),
	}
	reg.MustRegister(m.Messages, m.Failures, m.Checkpoint, m.CheckpointErr)
	return m
}

func (m *Metrics) Observe(msg protocol.Message) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(string(msg.Type)).Inc()
}

func (m *Metrics) ScheduledFailure() {
	if m != nil {
		m.Failures.Inc()
	}
}

func (m *Metrics) Checkpointed(cp protocol.ColumnData, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CheckpointErr.Inc()
		return
	}
	m.Checkpoint.Set(float64(cp.Column1))
}

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
