package usecase

import (
	"sync"
	"testing"
	"time"
)

type settleRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *settleRecorder) record(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, text)
}

func (r *settleRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestSettlerEmitsOncePerQuietInterval(t *testing.T) {
	t.Parallel()

	rec := &settleRecorder{}
	settler := NewSettler(100*time.Millisecond, rec.record)
	settler.SetListening(true)

	settler.Observe("how")
	time.Sleep(50 * time.Millisecond)
	settler.Observe("how is")
	time.Sleep(50 * time.Millisecond)
	settler.Observe("how is the engine")

	time.Sleep(300 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one settle, got %d: %v", len(got), got)
	}
	if got[0] != "how is the engine" {
		t.Fatalf("expected final transcript value, got %q", got[0])
	}
}

func TestSettlerIgnoresEmptyAndNotListening(t *testing.T) {
	t.Parallel()

	rec := &settleRecorder{}
	settler := NewSettler(30*time.Millisecond, rec.record)

	settler.Observe("while deaf")
	settler.SetListening(true)
	settler.Observe("")
	time.Sleep(100 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no settles, got %v", got)
	}
}

func TestSettlerCancelDropsPendingValue(t *testing.T) {
	t.Parallel()

	rec := &settleRecorder{}
	settler := NewSettler(50*time.Millisecond, rec.record)
	settler.SetListening(true)

	settler.Observe("discard me")
	settler.Cancel()
	time.Sleep(150 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected cancelled settle, got %v", got)
	}
}

func TestSettlerStopsWhenListeningTurnedOff(t *testing.T) {
	t.Parallel()

	rec := &settleRecorder{}
	settler := NewSettler(50*time.Millisecond, rec.record)
	settler.SetListening(true)

	settler.Observe("almost")
	settler.SetListening(false)
	time.Sleep(150 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("expected no settle after listening off, got %v", got)
	}
}
