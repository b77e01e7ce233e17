package safeany

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes.
type Timer interface {
	ObserveDuration()
}

// Metrics receives container instrumentation. All methods are thread-safe.
type Metrics interface {
	// Lock protocol
	LockViolation(kind ViolationKind)
	StructureLockWait(op string) Timer

	// Guards
	GuardAcquired()
	GuardReleased(leaked bool)

	// Extraction
	BadCast()
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

type nopMetrics struct{}

func (nopMetrics) LockViolation(ViolationKind)    {}
func (nopMetrics) StructureLockWait(string) Timer { return nopTimer{} }
func (nopMetrics) GuardAcquired()                 {}
func (nopMetrics) GuardReleased(bool)             {}
func (nopMetrics) BadCast()                       {}

// NopMetrics returns a Metrics implementation that discards everything.
func NopMetrics() Metrics { return nopMetrics{} }
