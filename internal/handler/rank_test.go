package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hifidelity/hifidelity/internal/gate"
	"github.com/hifidelity/hifidelity/internal/handler/dto"
	"github.com/hifidelity/hifidelity/internal/leaderboard"
	"github.com/hifidelity/hifidelity/internal/service"
	"github.com/hifidelity/hifidelity/internal/testutil"
)

const testAddress = "0x3c162E13c43B60aA0e54e1b19Bedeb5Da1d884E3"

func newTestHandler(t *testing.T) (*RankHandler, *testutil.RecordingMinter) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	minter := testutil.NewRecordingMinter()
	svc := service.NewRankService(
		leaderboard.New(),
		gate.New(gate.DefaultWindow),
		testutil.NewStaticResolver(testAddress),
		minter,
		nil,
		logger,
		"songs",
	)
	return NewRankHandler(svc, logger), minter
}

func decodeAction(t *testing.T, rec *httptest.ResponseRecorder) dto.ActionResponse {
	t.Helper()
	var resp dto.ActionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestSubmitWithHeaderFID(t *testing.T) {
	h, minter := newTestHandler(t)

	body := `{"category":"songs","list":["Kid A","OK Computer"]}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set(FIDHeader, "777")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeAction(t, rec)
	if !resp.Success {
		t.Errorf("success = false: %s", resp.Message)
	}
	if resp.Outcome != "rewarded" {
		t.Errorf("outcome = %q, want rewarded", resp.Outcome)
	}
	if len(minter.Calls()) != 1 {
		t.Errorf("mint calls = %d, want 1", len(minter.Calls()))
	}
}

func TestSubmitWithUntrustedDataFID(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"category":"songs","list":["Kid A"],"untrustedData":{"fid":12345}}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitListAsCommaString(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"category":"songs","list":"Kid A, OK Computer , In Rainbows"}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set(FIDHeader, "778")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	// The three items should all land on the board.
	viewReq := httptest.NewRequest(http.MethodGet, "/view", nil)
	viewRec := httptest.NewRecorder()
	h.View(viewRec, viewReq)

	var view dto.ViewResponse
	if err := json.NewDecoder(viewRec.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Top5) != 3 {
		t.Errorf("top5 length = %d, want 3: %v", len(view.Top5), view.Top5)
	}
}

func TestSubmitMissingFID(t *testing.T) {
	h, minter := newTestHandler(t)

	body := `{"category":"songs","list":["Kid A"]}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "MISSING_FID" {
		t.Errorf("code = %q, want MISSING_FID", resp.Code)
	}
	if len(minter.Calls()) != 0 {
		t.Error("minter should not be called")
	}
}

func TestSubmitInvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{not json"))
	req.Header.Set(FIDHeader, "777")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitResolveFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewRankService(
		leaderboard.New(),
		gate.New(gate.DefaultWindow),
		testutil.FailingResolver{},
		testutil.NewRecordingMinter(),
		nil,
		logger,
		"songs",
	)
	h := NewRankHandler(svc, logger)

	body := `{"category":"songs","list":["Kid A"]}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set(FIDHeader, "777")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}

func TestCheckInEmptyBody(t *testing.T) {
	h, minter := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
	req.Header.Set(FIDHeader, "777")
	rec := httptest.NewRecorder()
	h.CheckIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeAction(t, rec)
	if resp.Outcome != "rewarded" {
		t.Errorf("outcome = %q, want rewarded", resp.Outcome)
	}
	if len(minter.Calls()) != 1 {
		t.Errorf("mint calls = %d, want 1", len(minter.Calls()))
	}
}

func TestCheckInCooldownIs200(t *testing.T) {
	h, _ := newTestHandler(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
		req.Header.Set(FIDHeader, "777")
		rec := httptest.NewRecorder()
		h.CheckIn(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: status = %d", i, rec.Code)
		}

		resp := decodeAction(t, rec)
		want := "rewarded"
		if i == 1 {
			want = "already_done"
		}
		if resp.Outcome != want {
			t.Errorf("attempt %d: outcome = %q, want %q", i, resp.Outcome, want)
		}
	}
}

func TestShareReturnsShareText(t *testing.T) {
	h, _ := newTestHandler(t)

	// Seed a list first so the share text carries it.
	body := `{"category":"songs","list":["Kid A","OK Computer"]}`
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set(FIDHeader, "777")
	h.Submit(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/share", nil)
	req.Header.Set(FIDHeader, "777")
	rec := httptest.NewRecorder()
	h.Share(rec, req)

	resp := decodeAction(t, rec)
	if resp.Outcome != "rewarded" {
		t.Fatalf("outcome = %q, want rewarded", resp.Outcome)
	}
	if !strings.Contains(resp.ShareText, "Kid A") {
		t.Errorf("share text missing list items: %q", resp.ShareText)
	}
	if !strings.Contains(resp.ShareText, "#HighFidelity") {
		t.Errorf("share text missing hashtag: %q", resp.ShareText)
	}
}

func TestViewDefaultsCategory(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/view", nil)
	rec := httptest.NewRecorder()
	h.View(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var view dto.ViewResponse
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Category != "songs" {
		t.Errorf("category = %q, want songs", view.Category)
	}
	if view.Top5 == nil {
		t.Error("top5 should be an empty array, not null")
	}
}

func TestViewRankedCounts(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, fid := range []string{"1", "2"} {
		body := `{"category":"songs","list":["Kid A"]}`
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
		req.Header.Set(FIDHeader, fid)
		h.Submit(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/view?category=songs", nil)
	rec := httptest.NewRecorder()
	h.View(rec, req)

	var view dto.ViewResponse
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Ranked) != 1 || view.Ranked[0].Count != 2 {
		t.Errorf("ranked = %+v, want Kid A with count 2", view.Ranked)
	}
}
