package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hifidelity/hifidelity/internal/config"
)

//go:embed templates/frame.html
var frameFS embed.FS

var frameTemplate = template.Must(template.ParseFS(frameFS, "templates/frame.html"))

// FrameHandler serves the embedded mini-app page and its manifest.
type FrameHandler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewFrameHandler creates a new FrameHandler.
func NewFrameHandler(cfg *config.Config, logger *slog.Logger) *FrameHandler {
	return &FrameHandler{
		cfg:    cfg,
		logger: logger,
	}
}

// frameData is the template context for the mini-app page.
type frameData struct {
	Title           string
	DefaultCategory string
}

// Frame handles GET /frame.
func (h *FrameHandler) Frame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := frameData{
		Title:           "High Fidelity",
		DefaultCategory: h.cfg.DefaultCategory,
	}
	if err := frameTemplate.Execute(w, data); err != nil {
		h.logger.Error("frame render failed", "error", err)
	}
}

// accountAssociation proves domain ownership to mini-app validators.
type accountAssociation struct {
	Header    string `json:"header"`
	Payload   string `json:"payload"`
	Signature string `json:"signature"`
}

// miniApp describes the app in client directories.
type miniApp struct {
	Version         string   `json:"version"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	IconURL         string   `json:"iconUrl"`
	SplashImageURL  string   `json:"splashImageUrl"`
	HomeURL         string   `json:"homeUrl"`
	ImageURL        string   `json:"imageUrl"`
	Tags            []string `json:"tags"`
	PrimaryCategory string   `json:"primaryCategory"`
	Subtitle        string   `json:"subtitle"`
	ButtonTitle     string   `json:"buttonTitle"`
}

// manifest is the /.well-known/farcaster.json document.
type manifest struct {
	AccountAssociation accountAssociation `json:"accountAssociation"`
	MiniApp            miniApp            `json:"miniapp"`
}

// Manifest handles GET /.well-known/farcaster.json.
func (h *FrameHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	doc := manifest{
		AccountAssociation: accountAssociation{
			Header:    h.cfg.AssociationHeader,
			Payload:   h.cfg.AssociationPayload,
			Signature: h.cfg.AssociationSignature,
		},
		MiniApp: miniApp{
			Version:         "1",
			Name:            "High Fidelity",
			Description:     "Music Top 5 with HIFI",
			IconURL:         "https://placehold.co/512x512/png?text=HIFI",
			SplashImageURL:  "https://placehold.co/1200x630/png?text=High+Fidelity",
			HomeURL:         h.cfg.BaseURL + "/frame",
			ImageURL:        "https://placehold.co/1200x630/png?text=High+Fidelity",
			Tags:            []string{"music", "top5", "hifi"},
			PrimaryCategory: "entertainment",
			Subtitle:        "Music charts with friends",
			ButtonTitle:     "Open High Fidelity",
		},
	}

	writeJSON(w, http.StatusOK, doc)
}
