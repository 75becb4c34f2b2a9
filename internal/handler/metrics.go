package handler

import (
	"fmt"
	"net/http"

	"github.com/hifidelity/hifidelity/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "hifidelity_submissions_total %d\n", snap.Submissions)

	writeMetric(w, "hifidelity_actions_total{kind=\"checkin\",result=\"granted\"} %d\n", snap.CheckinsGranted)
	writeMetric(w, "hifidelity_actions_total{kind=\"checkin\",result=\"denied\"} %d\n", snap.CheckinsDenied)
	writeMetric(w, "hifidelity_actions_total{kind=\"share\",result=\"granted\"} %d\n", snap.SharesGranted)
	writeMetric(w, "hifidelity_actions_total{kind=\"share\",result=\"denied\"} %d\n", snap.SharesDenied)

	writeMetric(w, "hifidelity_mints_total{status=\"success\"} %d\n", snap.MintsSucceeded)
	writeMetric(w, "hifidelity_mints_total{status=\"failed\"} %d\n", snap.MintsFailed)
	writeMetric(w, "hifidelity_mints_total{status=\"skipped\"} %d\n", snap.MintsSkipped)
	writeMetric(w, "hifidelity_mint_duration_seconds_count %d\n", snap.MintDurationCount)
	writeMetric(w, "hifidelity_mint_duration_seconds_sum %.6f\n", float64(snap.MintDurationTotalNs)/1e9)

	writeMetric(w, "hifidelity_resolves_total{status=\"success\"} %d\n", snap.ResolvesSucceeded)
	writeMetric(w, "hifidelity_resolves_total{status=\"failed\"} %d\n", snap.ResolvesFailed)
	writeMetric(w, "hifidelity_resolve_duration_seconds_count %d\n", snap.ResolveDurationCount)
	writeMetric(w, "hifidelity_resolve_duration_seconds_sum %.6f\n", float64(snap.ResolveDurationTotalNs)/1e9)

	writeMetric(w, "hifidelity_tracked_categories %d\n", snap.TrackedCategories)
	writeMetric(w, "hifidelity_board_resets_total %d\n", snap.BoardResets)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
