// Package metricstest reads recorded call metrics back out of a gatherer in tests.
package metricstest

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

// CallCount sums function_calls_total for function with the given result label.
func CallCount(t testing.TB, g prometheus.Gatherer, function, result string) float64 {
	t.Helper()
	var total float64
	for _, m := range find(t, g, "function_calls_total", function) {
		if label(m, "result") == result {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

// SampleCount returns the number of latency observations recorded for function.
func SampleCount(t testing.TB, g prometheus.Gatherer, function string) uint64 {
	t.Helper()
	var total uint64
	for _, m := range find(t, g, "function_calls_duration_seconds", function) {
		total += m.GetHistogram().GetSampleCount()
	}
	return total
}

// InFlight returns the function_calls_concurrent gauge for function.
func InFlight(t testing.TB, g prometheus.Gatherer, function string) float64 {
	t.Helper()
	var total float64
	for _, m := range find(t, g, "function_calls_concurrent", function) {
		total += m.GetGauge().GetValue()
	}
	return total
}

// Labels returns the label set of the first series of family recorded for function.
func Labels(t testing.TB, g prometheus.Gatherer, family, function string) map[string]string {
	t.Helper()
	series := find(t, g, family, function)
	require.NotEmpty(t, series, "no %s series for %s", family, function)
	out := make(map[string]string)
	for _, lp := range series[0].GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func find(t testing.TB, g prometheus.Gatherer, family, function string) []*dto.Metric {
	families, err := g.Gather()
	require.NoError(t, err)

	var out []*dto.Metric
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label(m, "function") == function {
				out = append(out, m)
			}
		}
	}
	return out
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
