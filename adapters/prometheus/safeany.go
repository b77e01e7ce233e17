package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/safeany/core/safeany"
)

// anyMetrics implements safeany.Metrics using Prometheus.
type anyMetrics struct {
	violationsTotal *prometheus.CounterVec
	lockWait        *prometheus.HistogramVec
	guardsActive    prometheus.Gauge
	guardsReleased  *prometheus.CounterVec
	badCastsTotal   prometheus.Counter
}

// NewAnyMetrics creates a new Prometheus implementation of safeany.Metrics.
// One instance can be shared by any number of containers.
func NewAnyMetrics(reg prometheus.Registerer) safeany.Metrics {
	m := &anyMetrics{
		violationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safeany_lock_violations_total",
			Help: "Total number of failed lock acquisitions",
		}, []string{"kind"}),

		lockWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safeany_structure_lock_wait_seconds",
			Help:    "Time spent acquiring the structure lock for a mutation",
			Buckets: lockWaitBuckets,
		}, []string{"op"}),

		guardsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "safeany_guards_active",
			Help: "Number of live guards",
		}),

		guardsReleased: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safeany_guards_released_total",
			Help: "Total number of released guards",
		}, []string{"leaked"}),

		badCastsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safeany_bad_casts_total",
			Help: "Total number of extractions with a mismatched type",
		}),
	}

	reg.MustRegister(
		m.violationsTotal,
		m.lockWait,
		m.guardsActive,
		m.guardsReleased,
		m.badCastsTotal,
	)

	return m
}

func (m *anyMetrics) LockViolation(kind safeany.ViolationKind) {
	m.violationsTotal.WithLabelValues(string(kind)).Inc()
}

func (m *anyMetrics) StructureLockWait(op string) safeany.Timer {
	return newTimer(m.lockWait.WithLabelValues(op))
}

func (m *anyMetrics) GuardAcquired() {
	m.guardsActive.Inc()
}

func (m *anyMetrics) GuardReleased(leaked bool) {
	m.guardsActive.Dec()
	m.guardsReleased.WithLabelValues(boolToStr(leaked)).Inc()
}

func (m *anyMetrics) BadCast() {
	m.badCastsTotal.Inc()
}

var _ safeany.Metrics = (*anyMetrics)(nil)
