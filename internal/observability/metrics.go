// Package observability holds the Prometheus metrics of the planning server.
package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeulDagnachew-hub/Hex-sim/pkg/coverage"
)

// PlanCollector bundles Prometheus metrics for the HTTP surface and the plans
// it computes.
type PlanCollector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	PlanRuns      *prometheus.CounterVec
	PlanDurations prometheus.Histogram
	PlanCells     prometheus.Histogram
	LastCoverage  prometheus.Gauge
}

// NewPlanCollector registers metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewPlanCollector(reg prometheus.Registerer) (*PlanCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hexplan_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route and status code.",
	}, []string{"route", "code"}), "hexplan_http_requests_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hexplan_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"route"}), "hexplan_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}
	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hexplan_plan_runs_total",
		Help: "Planning runs, labeled by outcome (ok, invalid, failed).",
	}, []string{"outcome"}), "hexplan_plan_runs_total")
	if err != nil {
		return nil, err
	}
	planDur, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hexplan_plan_duration_seconds",
		Help:    "Time spent generating and evaluating one plan.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 9),
	}), "hexplan_plan_duration_seconds")
	if err != nil {
		return nil, err
	}
	cells, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hexplan_plan_cells",
		Help:    "Number of cells in each computed plan.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}), "hexplan_plan_cells")
	if err != nil {
		return nil, err
	}
	coverageRatio, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hexplan_last_coverage_ratio",
		Help: "Coverage ratio of the most recently computed plan.",
	}), "hexplan_last_coverage_ratio")
	if err != nil {
		return nil, err
	}

	return &PlanCollector{
		gatherer:      gatherer,
		HTTPRequests:  requests,
		HTTPDurations: durations,
		PlanRuns:      runs,
		PlanDurations: planDur,
		PlanCells:     cells,
		LastCoverage:  coverageRatio,
	}, nil
}

// Plan outcomes recorded by ObservePlan.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// ObservePlan records one planning run. m is ignored unless outcome is OutcomeOK.
func (c *PlanCollector) ObservePlan(outcome string, elapsed time.Duration, m coverage.Metrics) {
	if c == nil {
		return
	}
	c.PlanRuns.WithLabelValues(outcome).Inc()
	c.PlanDurations.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		c.PlanCells.Observe(float64(m.TotalCells))
		c.LastCoverage.Set(m.CoverageRatio)
	}
}

// Middleware records request counts and durations for next under route.
func (c *PlanCollector) Middleware(route string, next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.code)).Inc()
		c.HTTPDurations.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlanCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
