// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
	"strings"

	"github.com/hifidelity/hifidelity/internal/model"
)

// ListField accepts either a JSON array of strings or a single
// comma-separated string. The embedded frame sends an array; raw
// clients often send text.
type ListField []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *ListField) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*f = items
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*f = out
	return nil
}

// FIDValue accepts a Farcaster ID as either a JSON number or a string.
type FIDValue string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FIDValue) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FIDValue(num.String())
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FIDValue(raw)
	return nil
}

// String returns the FID as a string.
func (f FIDValue) String() string { return string(f) }

// UntrustedData carries the frame-signed payload fields we care about.
type UntrustedData struct {
	FID FIDValue `json:"fid"`
}

// SubmitRequest represents the request body for submitting a top five.
type SubmitRequest struct {
	Category      string         `json:"category"`
	List          ListField      `json:"list"`
	UntrustedData *UntrustedData `json:"untrustedData,omitempty"`
}

// ActionRequest represents the request body for check-in and share.
// Both endpoints only need the frame FID fallback.
type ActionRequest struct {
	UntrustedData *UntrustedData `json:"untrustedData,omitempty"`
}

// ActionResponse represents the result of a rewarded action.
type ActionResponse struct {
	Success   bool   `json:"success"`
	Outcome   string `json:"outcome"`
	Message   string `json:"message"`
	EventID   string `json:"event_id,omitempty"`
	TxHash    string `json:"tx_hash,omitempty"`
	ShareText string `json:"share_text,omitempty"`
}

// ToActionResponse converts a service result to its API shape.
func ToActionResponse(result *model.ActionResult) ActionResponse {
	return ActionResponse{
		Success:   result.OK(),
		Outcome:   string(result.Outcome),
		Message:   result.Message,
		EventID:   result.EventID,
		TxHash:    result.TxHash,
		ShareText: result.ShareText,
	}
}

// ViewResponse represents the leaderboard view of a category.
type ViewResponse struct {
	Success  bool        `json:"success"`
	Category string      `json:"category"`
	Top5     []string    `json:"top5"`
	Ranked   []RankEntry `json:"ranked"`
}

// RankEntry is a single leaderboard row.
type RankEntry struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ToViewResponse converts ranked items to the view shape. Top5 carries
// names only, matching what the frame renders; Ranked includes counts.
func ToViewResponse(category string, items []model.RankedItem) ViewResponse {
	resp := ViewResponse{
		Success:  true,
		Category: category,
		Top5:     make([]string, 0, len(items)),
		Ranked:   make([]RankEntry, 0, len(items)),
	}
	for _, item := range items {
		resp.Top5 = append(resp.Top5, item.Name)
		resp.Ranked = append(resp.Ranked, RankEntry{Name: item.Name, Count: item.Count})
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
