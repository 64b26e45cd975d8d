// Package metrics records per-tool call counts, latencies and connection
// health.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "mcp_redis"

// Collector receives events from the tool handlers and the health checker.
// Calls happen inline with every tool call and must be cheap.
type Collector interface {
	ObserveCall(tool, outcome string, elapsed time.Duration)
	SetConnectionUp(connection string, up bool)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) ObserveCall(string, string, time.Duration) {}
func (noopCollector) SetConnectionUp(string, bool)              {}

// PrometheusCollector exposes the events as Prometheus metrics.
type PrometheusCollector struct {
	calls        *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
	connUp       *prometheus.GaugeVec
}

// NewPrometheusCollector registers the metrics with reg, or with the default
// registerer when reg is nil.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	p := &PrometheusCollector{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls by tool and outcome.",
		}, []string{"tool", "outcome"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Duration of tool calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		connUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connection_up",
			Help:      "1 when the last PING to the connection succeeded, 0 otherwise.",
		}, []string{"connection"}),
	}

	for _, c := range []prometheus.Collector{p.calls, p.callDuration, p.connUp} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveCall counts one call and records its latency.
func (p *PrometheusCollector) ObserveCall(tool, outcome string, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.calls.WithLabelValues(tool, outcome).Inc()
	p.callDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// SetConnectionUp records the result of the last health probe.
func (p *PrometheusCollector) SetConnectionUp(connection string, up bool) {
	if p == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	p.connUp.WithLabelValues(connection).Set(v)
}

// StartServer serves gatherer on addr at /metrics until ctx is done.
func StartServer(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting metrics server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}()

	return server
}
