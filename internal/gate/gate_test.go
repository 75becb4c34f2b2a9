package gate

import (
	"sync"
	"testing"
	"time"

	"github.com/hifidelity/hifidelity/internal/model"
)

var epoch = time.UnixMilli(0)

func TestGate_FirstGrant(t *testing.T) {
	g := New(DefaultWindow)

	if !g.TryConsume("42", model.ActionCheckin, epoch) {
		t.Fatal("first consume should be granted")
	}
	last, ok := g.Last("42", model.ActionCheckin)
	if !ok || !last.Equal(epoch) {
		t.Errorf("expected stored timestamp %v, got %v (ok=%v)", epoch, last, ok)
	}
}

func TestGate_DeniedWithinWindow(t *testing.T) {
	g := New(DefaultWindow)

	t1 := epoch
	t2 := epoch.Add(time.Hour)

	if !g.TryConsume("42", model.ActionCheckin, t1) {
		t.Fatal("first consume should be granted")
	}
	if g.TryConsume("42", model.ActionCheckin, t2) {
		t.Fatal("consume within window should be denied")
	}

	// Denial must not touch the stored timestamp.
	last, _ := g.Last("42", model.ActionCheckin)
	if !last.Equal(t1) {
		t.Errorf("stored timestamp moved on denial: got %v, want %v", last, t1)
	}
}

func TestGate_GrantedAfterWindow(t *testing.T) {
	g := New(DefaultWindow)

	t1 := epoch
	t2 := epoch.Add(24*time.Hour + time.Millisecond)

	g.TryConsume("42", model.ActionCheckin, t1)
	if !g.TryConsume("42", model.ActionCheckin, t2) {
		t.Fatal("consume after window should be granted")
	}
	last, _ := g.Last("42", model.ActionCheckin)
	if !last.Equal(t2) {
		t.Errorf("stored timestamp not updated: got %v, want %v", last, t2)
	}
}

func TestGate_ExactBoundaryGrants(t *testing.T) {
	g := New(DefaultWindow)

	g.TryConsume("42", model.ActionShare, epoch)
	// now - last == window grants (>= comparison).
	if !g.TryConsume("42", model.ActionShare, epoch.Add(24*time.Hour)) {
		t.Error("consume exactly one window later should be granted")
	}
}

func TestGate_KindsAreIndependent(t *testing.T) {
	g := New(DefaultWindow)

	if !g.TryConsume("42", model.ActionCheckin, epoch) {
		t.Fatal("checkin should be granted")
	}
	if !g.TryConsume("42", model.ActionShare, epoch) {
		t.Error("share should be granted independently of checkin")
	}
}

func TestGate_UsersAreIndependent(t *testing.T) {
	g := New(DefaultWindow)

	g.TryConsume("42", model.ActionCheckin, epoch)
	if !g.TryConsume("43", model.ActionCheckin, epoch) {
		t.Error("different user should be granted")
	}
}

func TestGate_ConcurrentSingleGrant(t *testing.T) {
	g := New(DefaultWindow)

	const callers = 32
	now := time.Now()

	var wg sync.WaitGroup
	granted := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryConsume("42", model.ActionCheckin, now) {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	count := 0
	for range granted {
		count++
	}
	if count != 1 {
		t.Errorf("expected exactly 1 grant under contention, got %d", count)
	}
}
