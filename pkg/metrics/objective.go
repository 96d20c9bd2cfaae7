package metrics

import (
	"fmt"
	"strconv"
	"time"
)

// Percentile is the target percentile of an objective, rendered as its label value.
type Percentile string

const (
	P90   Percentile = "90"
	P95   Percentile = "95"
	P99   Percentile = "99"
	P99_9 Percentile = "99.9"
)

// ParsePercentile accepts the label form of a supported percentile ("90", "95", "99", "99.9").
func ParsePercentile(s string) (Percentile, error) {
	switch p := Percentile(s); p {
	case P90, P95, P99, P99_9:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported objective percentile %q", s)
	}
}

// LatencyTarget asks that Percentile of calls finish within Threshold.
type LatencyTarget struct {
	Threshold  time.Duration
	Percentile Percentile
}

// Objective is a named service-level objective attached to recorded calls.
// It is metadata for alerting rules; the recorder never rejects or delays a call because of it.
type Objective struct {
	Name        string
	SuccessRate Percentile     // empty when the objective has no success-rate target
	Latency     *LatencyTarget // nil when the objective has no latency target
}

// APIObjective is the objective shared by all user routes.
var APIObjective = Objective{
	Name:        "api",
	SuccessRate: P99,
	Latency: &LatencyTarget{
		Threshold:  250 * time.Millisecond,
		Percentile: P99_9,
	},
}

// Validate checks that percentiles are supported and the latency threshold is positive.
func (o Objective) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("objective name is required")
	}
	if o.SuccessRate != "" {
		if _, err := ParsePercentile(string(o.SuccessRate)); err != nil {
			return fmt.Errorf("objective %s success rate: %w", o.Name, err)
		}
	}
	if o.Latency != nil {
		if o.Latency.Threshold <= 0 {
			return fmt.Errorf("objective %s latency threshold must be positive", o.Name)
		}
		if _, err := ParsePercentile(string(o.Latency.Percentile)); err != nil {
			return fmt.Errorf("objective %s latency: %w", o.Name, err)
		}
	}
	return nil
}

// thresholdLabel renders the latency threshold in seconds, e.g. "0.25".
func (o Objective) thresholdLabel() string {
	if o.Latency == nil {
		return ""
	}
	return strconv.FormatFloat(o.Latency.Threshold.Seconds(), 'f', -1, 64)
}

func (o Objective) latencyPercentileLabel() string {
	if o.Latency == nil {
		return ""
	}
	return string(o.Latency.Percentile)
}
