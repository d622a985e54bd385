package llm

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/caliperhq/go-caliper/internal/ports"
)

// Backend request metrics. Registered once against the default registerer;
// every metrics middleware instance shares them.
var (
	llmRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caliper_llm_requests_total",
			Help: "Completion requests sent to the reasoning backend.",
		},
		[]string{"provider", "model", "status"},
	)

	llmRequestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caliper_llm_request_seconds",
			Help:    "Latency of reasoning backend requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)

	llmTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caliper_llm_tokens_total",
			Help: "Tokens exchanged with the reasoning backend.",
		},
		[]string{"provider", "model", "direction"},
	)
)

// metricsLLM records request counts, latency and token usage around the
// wrapped provider.
type metricsLLM struct {
	next     CoreLLM
	provider string
}

// MetricsMiddleware creates middleware that records Prometheus metrics for
// every backend request, labeled with the given provider name.
func MetricsMiddleware(provider string) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{next: next, provider: provider}
	}
}

// DoRequest executes the wrapped request while recording metrics.
func (m *metricsLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	start := time.Now()
	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)
	model := m.next.GetModel()

	llmRequestSeconds.WithLabelValues(m.provider, model).Observe(time.Since(start).Seconds())
	llmRequestsTotal.WithLabelValues(m.provider, model, requestStatus(ctx, err)).Inc()

	if err == nil {
		llmTokensTotal.WithLabelValues(m.provider, model, "input").Add(float64(tokensIn))
		llmTokensTotal.WithLabelValues(m.provider, model, "output").Add(float64(tokensOut))
	}

	return response, tokensIn, tokensOut, err
}

// GetModel returns the model name of the wrapped provider.
func (m *metricsLLM) GetModel() string { return m.next.GetModel() }

func requestStatus(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ports.ErrBackendUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
