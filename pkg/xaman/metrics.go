package xaman

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics of the SDK. All hooks are safe
// on a nil receiver so an unwired client costs nothing.
type Metrics struct {
	// HTTP sender metrics
	APIRequests *prometheus.CounterVec
	APIRetries  prometheus.Counter

	// Payload subscription metrics
	WSConnections prometheus.Counter
	WSMessages    prometheus.Counter
}

// NewMetrics initializes and registers the SDK metrics on the default
// registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry registers the SDK metrics on a custom registry.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		APIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "xaman_api_requests_total",
			Help: "Total platform API requests by method and status code",
		}, []string{"method", "status"}),
		APIRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "xaman_api_retries_total",
			Help: "Total platform API request retries",
		}),
		WSConnections: factory.NewCounter(prometheus.CounterOpts{
			Name: "xaman_ws_connections_total",
			Help: "Total payload subscription connections opened",
		}),
		WSMessages: factory.NewCounter(prometheus.CounterOpts{
			Name: "xaman_ws_messages_total",
			Help: "Total payload subscription messages received",
		}),
	}
}

func (m *Metrics) recordRequest(method, status string) {
	if m == nil {
		return
	}
	m.APIRequests.WithLabelValues(method, status).Inc()
}

func (m *Metrics) recordRetry() {
	if m == nil {
		return
	}
	m.APIRetries.Inc()
}

func (m *Metrics) recordWSConnection() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

func (m *Metrics) recordWSMessage() {
	if m == nil {
		return
	}
	m.WSMessages.Inc()
}
