package ports

import (
	"context"
	"time"

	"voxform/internal/domain"
)

// SpeechSource is the continuous speech-to-text collaborator. While started it
// emits the whole accumulated utterance on every partial update; Reset clears
// the accumulated buffer so the next snapshot starts empty.
type SpeechSource interface {
	Start(ctx context.Context) error
	Stop() error
	Reset()
	Snapshots() <-chan string
}

// Speaker plays prompt text aloud. Fire and forget; failures are non-fatal.
type Speaker interface {
	Speak(text string)
}

// Coordinates is a single geolocation fix.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geolocator answers single-shot position queries.
type Geolocator interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// Clock supplies the current time so auto-filled fields are testable.
type Clock interface {
	Now() time.Time
}

// EventSink emits backend state and data changes to the UI.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	CursorMoved(sectionKey string, fieldID string)
	TranscriptUpdated(text string)
	ResponseChanged(fieldID string, value string)
	PhotoAttached(fieldID string, ref string)
	SessionError(code domain.ErrorCode, detail string)
}
