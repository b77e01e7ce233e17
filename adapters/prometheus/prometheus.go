// Package prometheus provides a Prometheus implementation of the safeany
// metrics interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/safeany/core/safeany"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) safeany.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Lock waits are short unless a blocking container is contended, so the
// buckets start in the microsecond range (in seconds).
var lockWaitBuckets = []float64{
	.000001, .00001, .0001, .001, .01, .1, 1, 10,
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
