package usecase

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Settler absorbs the rapid stream of cumulative transcript snapshots and
// emits exactly one settled value per quiet interval. A new snapshot re-arms
// the timer; only one timer is ever live.
type Settler struct {
	mu        sync.Mutex
	debounced func(func())
	emit      func(string)
	latest    string
	listening bool
}

// NewSettler creates a Settler firing emit after quiet intervals of d.
func NewSettler(d time.Duration, emit func(string)) *Settler {
	return &Settler{
		debounced: debounce.New(d),
		emit:      emit,
	}
}

// SetListening gates the stream. While off, snapshots are ignored and any
// armed timer fires as a no-op.
func (s *Settler) SetListening(on bool) {
	s.mu.Lock()
	s.listening = on
	if !on {
		s.latest = ""
	}
	s.mu.Unlock()
}

// Observe records a transcript snapshot and re-arms the settle timer. Empty
// snapshots never settle.
func (s *Settler) Observe(text string) {
	s.mu.Lock()
	if !s.listening || text == "" {
		s.mu.Unlock()
		return
	}
	s.latest = text
	s.mu.Unlock()

	s.debounced(s.fire)
}

func (s *Settler) fire() {
	s.mu.Lock()
	text := s.latest
	ok := s.listening && text != ""
	s.latest = ""
	s.mu.Unlock()

	if ok {
		s.emit(text)
	}
}

// Cancel discards the pending value so an armed timer fires as a no-op.
func (s *Settler) Cancel() {
	s.mu.Lock()
	s.latest = ""
	s.mu.Unlock()
}
