// Package gate enforces the once-per-rolling-window rule for rewarded daily
// actions. Each (FID, action kind) pair tracks the timestamp of its last
// grant; a new grant requires the full window to have elapsed since then.
package gate

import (
	"sync"
	"time"

	"github.com/hifidelity/hifidelity/internal/model"
)

// DefaultWindow is the cooldown between grants of the same action.
// The window rolls from the last grant; it is not a calendar-day boundary.
const DefaultWindow = 24 * time.Hour

type key struct {
	fid  string
	kind model.ActionKind
}

// Gate tracks last-grant timestamps per (FID, action kind).
type Gate struct {
	window time.Duration

	mu    sync.Mutex
	lasts map[key]time.Time
}

// New creates a Gate with the given cooldown window.
// A non-positive window falls back to DefaultWindow.
func New(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{
		window: window,
		lasts:  make(map[key]time.Time),
	}
}

// TryConsume attempts to grant the action at time now. The check and the
// timestamp update happen under one lock, so two concurrent callers for the
// same user cannot both be granted within a window.
//
// Granted: the stored timestamp moves to now and true is returned.
// Denied: stored state is untouched and false is returned.
func (g *Gate) TryConsume(fid string, kind model.ActionKind, now time.Time) bool {
	k := key{fid: fid, kind: kind}

	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.lasts[k]; ok && now.Sub(last) < g.window {
		return false
	}
	g.lasts[k] = now
	return true
}

// Last returns the stored last-grant timestamp for (fid, kind), if any.
func (g *Gate) Last(fid string, kind model.ActionKind) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.lasts[key{fid: fid, kind: kind}]
	return last, ok
}

// Window returns the configured cooldown window.
func (g *Gate) Window() time.Duration {
	return g.window
}
