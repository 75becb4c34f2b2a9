package metrics

import (
	"sync/atomic"
	"time"

	"github.com/hifidelity/hifidelity/internal/model"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Submissions uint64

	CheckinsGranted uint64
	CheckinsDenied  uint64
	SharesGranted   uint64
	SharesDenied    uint64

	MintsSucceeded      uint64
	MintsFailed         uint64
	MintsSkipped        uint64
	MintDurationCount   uint64
	MintDurationTotalNs int64

	ResolvesSucceeded      uint64
	ResolvesFailed         uint64
	ResolveDurationCount   uint64
	ResolveDurationTotalNs int64

	TrackedCategories int64
	BoardResets       uint64
}

// InMemoryRecorder stores metrics in memory. Used for tests and for the
// debug metrics endpoint.
type InMemoryRecorder struct {
	submissions uint64

	checkinsGranted uint64
	checkinsDenied  uint64
	sharesGranted   uint64
	sharesDenied    uint64

	mintsSucceeded      uint64
	mintsFailed         uint64
	mintsSkipped        uint64
	mintDurationCount   uint64
	mintDurationTotalNs int64

	resolvesSucceeded      uint64
	resolvesFailed         uint64
	resolveDurationCount   uint64
	resolveDurationTotalNs int64

	trackedCategories int64
	boardResets       uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Submissions:            atomic.LoadUint64(&m.submissions),
		CheckinsGranted:        atomic.LoadUint64(&m.checkinsGranted),
		CheckinsDenied:         atomic.LoadUint64(&m.checkinsDenied),
		SharesGranted:          atomic.LoadUint64(&m.sharesGranted),
		SharesDenied:           atomic.LoadUint64(&m.sharesDenied),
		MintsSucceeded:         atomic.LoadUint64(&m.mintsSucceeded),
		MintsFailed:            atomic.LoadUint64(&m.mintsFailed),
		MintsSkipped:           atomic.LoadUint64(&m.mintsSkipped),
		MintDurationCount:      atomic.LoadUint64(&m.mintDurationCount),
		MintDurationTotalNs:    atomic.LoadInt64(&m.mintDurationTotalNs),
		ResolvesSucceeded:      atomic.LoadUint64(&m.resolvesSucceeded),
		ResolvesFailed:         atomic.LoadUint64(&m.resolvesFailed),
		ResolveDurationCount:   atomic.LoadUint64(&m.resolveDurationCount),
		ResolveDurationTotalNs: atomic.LoadInt64(&m.resolveDurationTotalNs),
		TrackedCategories:      atomic.LoadInt64(&m.trackedCategories),
		BoardResets:            atomic.LoadUint64(&m.boardResets),
	}
}

// IncSubmission increments the submission counter.
func (m *InMemoryRecorder) IncSubmission() {
	atomic.AddUint64(&m.submissions, 1)
}

// IncActionGranted increments the granted counter for an action kind.
func (m *InMemoryRecorder) IncActionGranted(kind string) {
	switch kind {
	case string(model.ActionCheckin):
		atomic.AddUint64(&m.checkinsGranted, 1)
	case string(model.ActionShare):
		atomic.AddUint64(&m.sharesGranted, 1)
	}
}

// IncActionDenied increments the denied counter for an action kind.
func (m *InMemoryRecorder) IncActionDenied(kind string) {
	switch kind {
	case string(model.ActionCheckin):
		atomic.AddUint64(&m.checkinsDenied, 1)
	case string(model.ActionShare):
		atomic.AddUint64(&m.sharesDenied, 1)
	}
}

// IncMint increments the mint counter for the given status.
func (m *InMemoryRecorder) IncMint(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.mintsSucceeded, 1)
	case "failed":
		atomic.AddUint64(&m.mintsFailed, 1)
	case "skipped":
		atomic.AddUint64(&m.mintsSkipped, 1)
	}
}

// ObserveMintDuration records one mint round trip.
func (m *InMemoryRecorder) ObserveMintDuration(duration time.Duration) {
	atomic.AddUint64(&m.mintDurationCount, 1)
	atomic.AddInt64(&m.mintDurationTotalNs, duration.Nanoseconds())
}

// IncResolve increments the resolve counter for the given status.
func (m *InMemoryRecorder) IncResolve(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.resolvesSucceeded, 1)
	case "failed":
		atomic.AddUint64(&m.resolvesFailed, 1)
	}
}

// ObserveResolveDuration records one identity resolution round trip.
func (m *InMemoryRecorder) ObserveResolveDuration(duration time.Duration) {
	atomic.AddUint64(&m.resolveDurationCount, 1)
	atomic.AddInt64(&m.resolveDurationTotalNs, duration.Nanoseconds())
}

// SetTrackedCategories records the current category count.
func (m *InMemoryRecorder) SetTrackedCategories(n int) {
	atomic.StoreInt64(&m.trackedCategories, int64(n))
}

// IncBoardReset increments the weekly reset counter.
func (m *InMemoryRecorder) IncBoardReset() {
	atomic.AddUint64(&m.boardResets, 1)
}
