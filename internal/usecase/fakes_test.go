package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"voxform/internal/domain"
	"voxform/internal/ports"
)

type fakeSpeech struct {
	mu        sync.Mutex
	snapshots chan string
	started   bool
	resets    int
	stops     int
	startErr  error
}

func newFakeSpeech() *fakeSpeech {
	return &fakeSpeech{snapshots: make(chan string, 16)}
}

func (f *fakeSpeech) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = true
	return nil
}

func (f *fakeSpeech) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
	f.stops++
	return nil
}

func (f *fakeSpeech) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeSpeech) Snapshots() <-chan string { return f.snapshots }

type fakeSpeaker struct {
	mu      sync.Mutex
	prompts []string
}

func (f *fakeSpeaker) Speak(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, text)
}

func (f *fakeSpeaker) spoken() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type stateChange struct {
	state  domain.SessionState
	reason domain.SessionStateReason
}

type sinkError struct {
	code   domain.ErrorCode
	detail string
}

type fakeEventSink struct {
	mu        sync.Mutex
	states    []stateChange
	cursors   []string
	responses map[string]string
	photos    map[string]string
	errors    []sinkError
}

func newFakeEventSink() *fakeEventSink {
	return &fakeEventSink{
		responses: make(map[string]string),
		photos:    make(map[string]string),
	}
}

func (f *fakeEventSink) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, stateChange{state: state, reason: reason})
}

func (f *fakeEventSink) CursorMoved(_ string, fieldID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursors = append(f.cursors, fieldID)
}

func (f *fakeEventSink) TranscriptUpdated(_ string) {}

func (f *fakeEventSink) ResponseChanged(fieldID string, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[fieldID] = value
}

func (f *fakeEventSink) PhotoAttached(fieldID string, ref string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos[fieldID] = ref
}

func (f *fakeEventSink) SessionError(code domain.ErrorCode, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, sinkError{code: code, detail: detail})
}

func (f *fakeEventSink) snapshotStates() []stateChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stateChange(nil), f.states...)
}

func (f *fakeEventSink) lastState() stateChange {
	states := f.snapshotStates()
	if len(states) == 0 {
		return stateChange{}
	}
	return states[len(states)-1]
}

func (f *fakeEventSink) snapshotErrors() []sinkError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sinkError(nil), f.errors...)
}

type fakeGeolocator struct {
	pos ports.Coordinates
	err error
}

func (f *fakeGeolocator) Coordinates(_ context.Context) (ports.Coordinates, error) {
	if f.err != nil {
		return ports.Coordinates{}, f.err
	}
	return f.pos, nil
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

type fakeCatalog struct {
	schemas map[string]domain.Schema
}

func (f *fakeCatalog) Lookup(modelID string) (domain.Schema, error) {
	s, ok := f.schemas[modelID]
	if !ok {
		return domain.Schema{}, domain.ErrSchemaNotFound
	}
	return s, nil
}

var errGeoDown = errors.New("permission denied")
