package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hifidelity/hifidelity/internal/metrics"
)

func TestMetricsExposition(t *testing.T) {
	rec := metrics.NewInMemory()
	rec.IncSubmission()
	rec.IncSubmission()
	rec.IncActionGranted("checkin")
	rec.IncMint("success")

	h := NewMetricsHandler(rec)

	w := httptest.NewRecorder()
	h.Metrics(w, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{
		"hifidelity_submissions_total 2",
		`hifidelity_actions_total{kind="checkin",result="granted"} 1`,
		`hifidelity_mints_total{status="success"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q:\n%s", want, body)
		}
	}
}

func TestMetricsNilSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	w := httptest.NewRecorder()
	h.Metrics(w, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
