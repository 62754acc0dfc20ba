package reasoning

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts outbound reasoning calls so operators can see how often the
// engine reaches for the service and how often it degrades to fallbacks.
type Metrics struct {
	requests *prometheus.CounterVec
}

// NewMetrics registers the reasoning collectors with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formflow_reasoning_requests_total",
				Help: "Total reasoning-service calls by purpose and result",
			},
			[]string{"purpose", "result"},
		),
	}
}

// NewMetricsWith registers the collectors with a caller-provided registerer,
// mainly for tests.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "formflow_reasoning_requests_total",
				Help: "Total reasoning-service calls by purpose and result",
			},
			[]string{"purpose", "result"},
		),
	}
}

// Observe records one call outcome for the given purpose ("question" or
// "validation").
func (m *Metrics) Observe(purpose string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.requests.WithLabelValues(purpose, result).Inc()
}

// Instrument wraps a Service so every call is counted under the purpose
// label. A nil metrics receiver leaves the service untouched.
func (m *Metrics) Instrument(purpose string, svc Service) Service {
	if m == nil || svc == nil {
		return svc
	}
	return ServiceFunc(func(ctx context.Context, prompt string) (string, error) {
		reply, err := svc.Generate(ctx, prompt)
		m.Observe(purpose, err)
		return reply, err
	})
}
