package safeany

import (
	"sync"
)

type dropped struct {
	Name  string
	drops *[]string
}

func (d *dropped) Drop() { *d.drops = append(*d.drops, d.Name) }

type panicky struct{ S string }

func (panicky) Clone() panicky { panic("clone failed") }

type recordingMetrics struct {
	mu         sync.Mutex
	violations map[ViolationKind]int
	acquired   int
	released   int
	leaked     int
	badCasts   int
	waits      map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		violations: make(map[ViolationKind]int),
		waits:      make(map[string]int),
	}
}

func (m *recordingMetrics) LockViolation(kind ViolationKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations[kind]++
}

func (m *recordingMetrics) StructureLockWait(op string) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waits[op]++
	return nopTimer{}
}

func (m *recordingMetrics) GuardAcquired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquired++
}

func (m *recordingMetrics) GuardReleased(leaked bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released++
	if leaked {
		m.leaked++
	}
}

func (m *recordingMetrics) BadCast() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.badCasts++
}

type metricsSnapshot struct {
	violations map[ViolationKind]int
	acquired   int
	released   int
	leaked     int
	badCasts   int
}

func (m *recordingMetrics) snapshot() metricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return metricsSnapshot{
		acquired: m.acquired,
		released: m.released,
		leaked:   m.leaked,
		badCasts: m.badCasts,
		violations: map[ViolationKind]int{
			ViolationStructure: m.violations[ViolationStructure],
			ViolationAccess:    m.violations[ViolationAccess],
		},
	}
}
