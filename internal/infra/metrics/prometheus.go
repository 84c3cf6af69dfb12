// Package metrics отдает счетчики анкеты и консультанта в Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/usecase"
)

// PrometheusRecorder реализует usecase.Metrics.
type PrometheusRecorder struct {
	formsStarted  prometheus.Counter
	stepsReached  *prometheus.CounterVec
	inputRejected *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	assistant     *prometheus.CounterVec
}

// NewPrometheusRecorder регистрирует счетчики в reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		formsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lead_forms_started_total",
			Help: "Number of lead forms started, restarts included",
		}),
		stepsReached: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_steps_reached_total",
			Help: "Number of times a lead form step was reached",
		}, []string{"step"}),
		inputRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_input_rejected_total",
			Help: "Number of inputs rejected by step validation",
		}, []string{"step"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lead_deliveries_total",
			Help: "Lead deliveries to the staff chat by outcome",
		}, []string{"outcome"}),
		assistant: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_requests_total",
			Help: "Free-form question answering requests by status",
		}, []string{"status"}),
	}
}

func (p *PrometheusRecorder) FormStarted() {
	p.formsStarted.Inc()
}

func (p *PrometheusRecorder) StepReached(step usecase.Step) {
	p.stepsReached.WithLabelValues(string(step)).Inc()
}

func (p *PrometheusRecorder) InputRejected(step usecase.Step) {
	p.inputRejected.WithLabelValues(string(step)).Inc()
}

func (p *PrometheusRecorder) LeadDelivered(outcome usecase.DeliveryOutcome) {
	p.deliveries.WithLabelValues(outcome.String()).Inc()
}

func (p *PrometheusRecorder) AssistantAnswered(ok bool) {
	status := "success"
	if !ok {
		status = "error"
	}
	p.assistant.WithLabelValues(status).Inc()
}
