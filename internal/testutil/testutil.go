// Package testutil provides shared fakes and helpers for tests.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrResolverDown is returned by FailingResolver.
var ErrResolverDown = errors.New("resolver unavailable")

// ErrMinterDown is returned by FailingMinter.
var ErrMinterDown = errors.New("minter unavailable")

// StaticResolver resolves every FID to a fixed address and counts calls.
type StaticResolver struct {
	Address string

	mu    sync.Mutex
	calls int
}

// NewStaticResolver creates a resolver returning the given address.
func NewStaticResolver(address string) *StaticResolver {
	return &StaticResolver{Address: address}
}

// ResolveAddress returns the fixed address.
func (r *StaticResolver) ResolveAddress(ctx context.Context, fid string) (string, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return r.Address, nil
}

// Calls returns how many times ResolveAddress was invoked.
func (r *StaticResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// FailingResolver fails every resolution.
type FailingResolver struct{}

// ResolveAddress always returns ErrResolverDown.
func (FailingResolver) ResolveAddress(ctx context.Context, fid string) (string, error) {
	return "", ErrResolverDown
}

// MintCall records one mint invocation.
type MintCall struct {
	To    string
	Units int64
}

// RecordingMinter records mints and returns deterministic tx hashes.
type RecordingMinter struct {
	mu    sync.Mutex
	calls []MintCall
}

// NewRecordingMinter creates an empty RecordingMinter.
func NewRecordingMinter() *RecordingMinter {
	return &RecordingMinter{}
}

// Mint records the call and fabricates a tx hash.
func (m *RecordingMinter) Mint(ctx context.Context, to string, units int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MintCall{To: to, Units: units})
	return fmt.Sprintf("0xtx%04d", len(m.calls)), nil
}

// Enabled reports true.
func (m *RecordingMinter) Enabled() bool { return true }

// Calls returns a copy of the recorded mint calls.
func (m *RecordingMinter) Calls() []MintCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MintCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// FailingMinter is enabled but fails every mint.
type FailingMinter struct{}

// Mint always returns ErrMinterDown.
func (FailingMinter) Mint(ctx context.Context, to string, units int64) (string, error) {
	return "", ErrMinterDown
}

// Enabled reports true.
func (FailingMinter) Enabled() bool { return true }

// UniqueFID generates a unique FID for tests.
func UniqueFID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// FixedClock returns a clock function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
