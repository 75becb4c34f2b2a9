package leaderboard

import (
	"fmt"
	"sync"
	"testing"
)

func TestBoard_RecordAndTopN(t *testing.T) {
	b := New()
	b.Record("songs", []string{"A", "B", "A", "C"})

	if got := b.Count("songs", "A"); got != 2 {
		t.Errorf("expected A=2, got %d", got)
	}
	if got := b.Count("songs", "B"); got != 1 {
		t.Errorf("expected B=1, got %d", got)
	}
	if got := b.Count("songs", "C"); got != 1 {
		t.Errorf("expected C=1, got %d", got)
	}

	top := b.TopN("songs", 5)
	want := []string{"A", "B", "C"}
	if len(top) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, top[i].Name)
		}
	}
}

func TestBoard_TiesBreakByInsertionOrder(t *testing.T) {
	b := New()
	// B enters before C; both end at count 1, so B must rank first.
	b.Record("songs", []string{"B"})
	b.Record("songs", []string{"C"})

	top := b.TopN("songs", 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0].Name != "B" || top[1].Name != "C" {
		t.Errorf("expected [B C], got [%s %s]", top[0].Name, top[1].Name)
	}
}

func TestBoard_TwoUsersAccumulate(t *testing.T) {
	b := New()
	b.Record("songs", []string{"X"})
	b.Record("songs", []string{"X", "Y"})

	if got := b.Count("songs", "X"); got != 2 {
		t.Errorf("expected X=2, got %d", got)
	}
	top := b.TopN("songs", 2)
	if len(top) != 2 || top[0].Name != "X" || top[1].Name != "Y" {
		t.Errorf("unexpected top: %+v", top)
	}
}

func TestBoard_TopNLimitsAndOrdering(t *testing.T) {
	b := New()
	for i := 0; i < 10; i++ {
		items := make([]string, 0, 10-i)
		for j := 0; j <= 10-i; j++ {
			items = append(items, fmt.Sprintf("item-%d", i))
		}
		b.Record("movies", items)
	}

	top := b.TopN("movies", 5)
	if len(top) > 5 {
		t.Fatalf("topN returned %d items, want at most 5", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Count > top[i-1].Count {
			t.Errorf("counts not monotonically non-increasing: %+v", top)
		}
	}
}

func TestBoard_EmptyListIsNoop(t *testing.T) {
	b := New()
	b.Record("songs", nil)
	b.Record("songs", []string{})

	if got := b.Categories(); got != 0 {
		t.Errorf("expected no categories after empty submissions, got %d", got)
	}
	if top := b.TopN("songs", 5); len(top) != 0 {
		t.Errorf("expected empty result, got %+v", top)
	}
}

func TestBoard_UnknownCategory(t *testing.T) {
	b := New()
	if top := b.TopN("nope", 5); top == nil || len(top) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", top)
	}
}

func TestBoard_ResetAll(t *testing.T) {
	b := New()
	b.Record("songs", []string{"A"})
	b.Record("movies", []string{"M"})

	b.ResetAll()

	for _, cat := range []string{"songs", "movies"} {
		if top := b.TopN(cat, 5); len(top) != 0 {
			t.Errorf("category %s not cleared: %+v", cat, top)
		}
	}
	if got := b.Categories(); got != 0 {
		t.Errorf("expected 0 categories after reset, got %d", got)
	}
}

func TestBoard_ConcurrentRecords(t *testing.T) {
	b := New()

	const workers = 16
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				b.Record("songs", []string{"X"})
			}
		}()
	}
	wg.Wait()

	if got := b.Count("songs", "X"); got != workers*perWorker {
		t.Errorf("lost updates: expected %d, got %d", workers*perWorker, got)
	}
}
