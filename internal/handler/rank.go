package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hifidelity/hifidelity/internal/handler/dto"
	"github.com/hifidelity/hifidelity/internal/service"
)

// FIDHeader carries the caller's Farcaster ID on direct API requests.
// Frame POSTs carry the FID inside untrustedData instead.
const FIDHeader = "X-Farcaster-FID"

// RankHandler handles HTTP requests for the ranking mini app.
type RankHandler struct {
	svc    *service.RankService
	logger *slog.Logger
}

// NewRankHandler creates a new RankHandler.
func NewRankHandler(svc *service.RankService, logger *slog.Logger) *RankHandler {
	return &RankHandler{
		svc:    svc,
		logger: logger,
	}
}

// Submit handles POST /submit.
func (h *RankHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	fid := requestFID(r, req.UntrustedData)

	result, err := h.svc.Submit(r.Context(), fid, req.Category, []string(req.List))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("top5_submitted",
		"fid", fid,
		"category", req.Category,
		"items", len(req.List),
		"outcome", string(result.Outcome),
	)

	writeJSON(w, http.StatusOK, dto.ToActionResponse(result))
}

// CheckIn handles POST /checkin.
func (h *RankHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	fid := requestFID(r, req.UntrustedData)

	result, err := h.svc.CheckIn(r.Context(), fid)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("checkin",
		"fid", fid,
		"outcome", string(result.Outcome),
	)

	writeJSON(w, http.StatusOK, dto.ToActionResponse(result))
}

// Share handles POST /share.
func (h *RankHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req dto.ActionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	fid := requestFID(r, req.UntrustedData)

	result, err := h.svc.Share(r.Context(), fid)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("share",
		"fid", fid,
		"outcome", string(result.Outcome),
	)

	writeJSON(w, http.StatusOK, dto.ToActionResponse(result))
}

// View handles POST /view and GET /view.
// The category query parameter is optional; blank falls back to the
// configured default.
func (h *RankHandler) View(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = h.svc.DefaultCategory()
	}

	items := h.svc.TopFive(category)
	writeJSON(w, http.StatusOK, dto.ToViewResponse(category, items))
}

// handleServiceError maps service errors to HTTP responses.
func (h *RankHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFID):
		h.writeError(w, http.StatusBadRequest, "MISSING_FID", "Farcaster ID is required")
	case errors.Is(err, service.ErrResolveFailed):
		h.writeError(w, http.StatusBadGateway, "RESOLVE_FAILED", "Could not resolve Farcaster identity")
	case errors.Is(err, service.ErrUnknownAction):
		h.writeError(w, http.StatusBadRequest, "UNKNOWN_ACTION", "Unknown action kind")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *RankHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requestFID extracts the Farcaster ID from the header or, failing
// that, from the frame's untrustedData payload.
func requestFID(r *http.Request, untrusted *dto.UntrustedData) string {
	if fid := r.Header.Get(FIDHeader); fid != "" {
		return fid
	}
	if untrusted != nil {
		return untrusted.FID.String()
	}
	return ""
}

// decodeBody decodes an optional JSON body. Frame buttons POST without
// a body, so an empty body is not an error.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
