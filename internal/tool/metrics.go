package tool

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call outcomes recorded in the status label.
const (
	statusSuccess = "success"
	statusError   = "error"
	statusUnknown = "unknown_tool"
)

// Metrics records tool call counts and latencies. A nil *Metrics records
// nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the tool call collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gmail_mcp_tool_calls_total",
			Help: "Number of tool calls by tool and outcome.",
		}, []string{"tool", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gmail_mcp_tool_call_duration_seconds",
			Help:    "Duration of tool calls, including credential loading.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("reg.Register failed: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observe(tool, status string, since time.Time) {
	if m == nil {
		return
	}

	m.calls.WithLabelValues(tool, status).Inc()
	m.duration.WithLabelValues(tool).Observe(time.Since(since).Seconds())
}
