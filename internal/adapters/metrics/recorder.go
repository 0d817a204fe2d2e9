// Package metrics exposes supervision outcomes as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orplanning/internal/domain"
)

const namespace = "orplanning"

// Recorder implements domain.SupervisionRecorder on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	violations  *prometheus.CounterVec
	warnings    *prometheus.CounterVec
	conflicts   *prometheus.GaugeVec
}

// NewRecorder registers the supervision collectors along with the Go runtime
// and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Planning validations by outcome.",
		}, []string{"outcome"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "violations_total",
			Help:      "Supervision violations found, by kind.",
		}, []string{"kind"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Supervision warnings found, by kind.",
		}, []string{"kind"}),
		conflicts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_conflicts",
			Help:      "Conflicts found by the last rule catalog scan, by severity.",
		}, []string{"severity"}),
	}
	r.registry.MustRegister(
		r.validations, r.violations, r.warnings, r.conflicts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveValidation(report *domain.ValidationReport) {
	if report == nil {
		return
	}
	outcome := "valid"
	if !report.Valid() {
		outcome = "invalid"
	}
	r.validations.WithLabelValues(outcome).Inc()
	for _, v := range report.Violations {
		r.violations.WithLabelValues(string(v.Kind)).Inc()
	}
	for _, w := range report.Warnings {
		r.warnings.WithLabelValues(string(w.Kind)).Inc()
	}
}

func (r *Recorder) ObserveConflicts(conflicts []domain.CatalogConflict) {
	counts := map[domain.ConflictSeverity]float64{
		domain.SeverityLow:    0,
		domain.SeverityMedium: 0,
		domain.SeverityHigh:   0,
	}
	for _, c := range conflicts {
		counts[c.Severity]++
	}
	for severity, n := range counts {
		r.conflicts.WithLabelValues(string(severity)).Set(n)
	}
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

type noopRecorder struct{}

// NewNoopRecorder returns a recorder that discards observations.
func NewNoopRecorder() domain.SupervisionRecorder { return noopRecorder{} }

func (noopRecorder) ObserveValidation(*domain.ValidationReport) {}
func (noopRecorder) ObserveConflicts([]domain.CatalogConflict)  {}
