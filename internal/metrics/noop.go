package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSubmission is a no-op.
func (n *NoopRecorder) IncSubmission() {}

// IncActionGranted is a no-op.
func (n *NoopRecorder) IncActionGranted(kind string) {}

// IncActionDenied is a no-op.
func (n *NoopRecorder) IncActionDenied(kind string) {}

// IncMint is a no-op.
func (n *NoopRecorder) IncMint(status string) {}

// ObserveMintDuration is a no-op.
func (n *NoopRecorder) ObserveMintDuration(duration time.Duration) {}

// IncResolve is a no-op.
func (n *NoopRecorder) IncResolve(status string) {}

// ObserveResolveDuration is a no-op.
func (n *NoopRecorder) ObserveResolveDuration(duration time.Duration) {}

// SetTrackedCategories is a no-op.
func (n *NoopRecorder) SetTrackedCategories(n2 int) {}

// IncBoardReset is a no-op.
func (n *NoopRecorder) IncBoardReset() {}
