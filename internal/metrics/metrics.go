// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Submission metrics
	IncSubmission()

	// Daily action metrics
	IncActionGranted(kind string) // kind: "checkin" or "share"
	IncActionDenied(kind string)

	// Mint metrics
	IncMint(status string) // status: "success", "failed", "skipped"
	ObserveMintDuration(duration time.Duration)

	// Identity resolution metrics
	IncResolve(status string) // status: "success" or "failed"
	ObserveResolveDuration(duration time.Duration)

	// Leaderboard metrics
	SetTrackedCategories(n int)
	IncBoardReset()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
