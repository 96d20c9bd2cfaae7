package metrics

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names follow the autometrics conventions so the stock dashboards and
// SLO alerting rules work against this service unchanged.
const (
	callsTotalName      = "function_calls_total"
	callsDurationName   = "function_calls_duration_seconds"
	callsConcurrentName = "function_calls_concurrent"
	buildInfoName       = "build_info"
)

// DefaultBuckets covers 5ms to 10s.
var DefaultBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 0.75, 1, 2.5, 5, 7.5, 10}

// Result is the outcome label of a recorded call.
type Result string

const (
	ResultOK    Result = "ok"
	ResultError Result = "error"
)

// ResultFromStatus maps an HTTP status to a call result. Only server failures
// count against the success-rate objective.
func ResultFromStatus(status int) Result {
	if status >= http.StatusInternalServerError {
		return ResultError
	}
	return ResultOK
}

// BuildInfo is exported once as the build_info gauge.
type BuildInfo struct {
	Version     string
	Commit      string
	Branch      string
	ServiceName string
}

// Config configures a Recorder.
type Config struct {
	Build BuildInfo
	// Objectives whose latency thresholds must appear as histogram bucket bounds.
	Objectives []Objective
	// Buckets defaults to DefaultBuckets when empty.
	Buckets []float64
	// RuntimeCollectors adds the Go runtime and process collectors to the registry.
	RuntimeCollectors bool
}

// Function identifies an instrumented operation.
type Function struct {
	Name      string
	Module    string
	Objective Objective
}

// Recorder owns a private prometheus registry with per-function call counters,
// latency histograms and concurrency gauges. It is safe for concurrent use.
type Recorder struct {
	registry   *prometheus.Registry
	calls      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	concurrent *prometheus.GaugeVec
}

// NewRecorder creates the collectors and registers them on a fresh registry.
func NewRecorder(cfg Config) (*Recorder, error) {
	for _, o := range cfg.Objectives {
		if err := o.Validate(); err != nil {
			return nil, err
		}
	}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: callsTotalName,
			Help: "Autometrics counter for tracking function calls",
		}, []string{"function", "module", "result", "objective_name", "objective_percentile"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    callsDurationName,
			Help:    "Autometrics histogram for tracking function call duration",
			Buckets: bucketsFor(cfg.Buckets, cfg.Objectives),
		}, []string{"function", "module", "objective_name", "objective_percentile", "objective_latency_threshold"}),
		concurrent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: callsConcurrentName,
			Help: "Autometrics gauge for tracking function calls in flight",
		}, []string{"function", "module"}),
	}

	buildInfo := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: buildInfoName,
		Help: "Autometrics info metric for tracking software version and build details",
	}, []string{"version", "commit", "branch", "service_name"})
	buildInfo.WithLabelValues(cfg.Build.Version, cfg.Build.Commit, cfg.Build.Branch, cfg.Build.ServiceName).Set(1)

	toRegister := []prometheus.Collector{r.calls, r.duration, r.concurrent, buildInfo}
	if cfg.RuntimeCollectors {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, c := range toRegister {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return r, nil
}

// bucketsFor returns the bucket bounds with every objective threshold included.
func bucketsFor(buckets []float64, objectives []Objective) []float64 {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	out := slices.Clone(buckets)
	for _, o := range objectives {
		if o.Latency == nil {
			continue
		}
		if t := o.Latency.Threshold.Seconds(); !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out
}

// Track marks fn as in flight. The returned Call must be finished with Done.
func (r *Recorder) Track(fn Function) *Call {
	r.concurrent.WithLabelValues(fn.Name, fn.Module).Inc()
	return &Call{recorder: r, fn: fn, start: time.Now()}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for snapshots outside the HTTP handler.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Recorder) observe(fn Function, result Result, elapsed time.Duration) {
	o := fn.Objective
	r.concurrent.WithLabelValues(fn.Name, fn.Module).Dec()
	r.calls.WithLabelValues(fn.Name, fn.Module, string(result), o.Name, string(o.SuccessRate)).Inc()
	r.duration.WithLabelValues(fn.Name, fn.Module, o.Name, o.latencyPercentileLabel(), o.thresholdLabel()).
		Observe(elapsed.Seconds())
}

// Call is a single in-flight invocation started by Recorder.Track.
type Call struct {
	recorder *Recorder
	fn       Function
	start    time.Time
}

// Done records the outcome and latency of the call and returns the elapsed time.
func (c *Call) Done(result Result) time.Duration {
	elapsed := time.Since(c.start)
	c.recorder.observe(c.fn, result, elapsed)
	return elapsed
}
