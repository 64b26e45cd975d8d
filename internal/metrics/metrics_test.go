package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCollector(t *testing.T) {
	collector := Noop()
	require.NotNil(t, collector)
	collector.ObserveCall("get", "ok", time.Millisecond)
	collector.SetConnectionUp("redis", true)
}

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return nil
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	collector.ObserveCall("get", "ok", 2*time.Millisecond)
	collector.ObserveCall("get", "ok", 3*time.Millisecond)
	collector.ObserveCall("get", "invalid_input", time.Millisecond)
	collector.SetConnectionUp("redis", false)

	calls := family(t, reg, "mcp_redis_tool_calls_total")
	require.Len(t, calls.Metric, 2)

	byOutcome := map[string]float64{}
	for _, m := range calls.Metric {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" {
				byOutcome[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, map[string]float64{"ok": 2, "invalid_input": 1}, byOutcome)

	hist := family(t, reg, "mcp_redis_tool_call_duration_seconds")
	require.Len(t, hist.Metric, 1)
	assert.Equal(t, uint64(3), hist.Metric[0].GetHistogram().GetSampleCount())

	up := family(t, reg, "mcp_redis_connection_up")
	require.Len(t, up.Metric, 1)
	assert.Equal(t, 0.0, up.Metric[0].GetGauge().GetValue())
}

func TestPrometheusCollectorDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	_, err = NewPrometheusCollector(reg)
	assert.Error(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)
	collector.ObserveCall("dbsize", "ok", time.Millisecond)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mcp_redis_tool_calls_total{outcome="ok",tool="dbsize"} 1`)
}
