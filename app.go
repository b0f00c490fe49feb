package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"voxform/internal/bootstrap"
	"voxform/internal/config"
	"voxform/internal/domain"
	"voxform/internal/kv"
	"voxform/internal/usecase"
)

const (
	eventSession    = "voxform:session"
	eventCursor     = "voxform:cursor"
	eventTranscript = "voxform:transcript"
	eventResponse   = "voxform:response"
	eventPhoto      = "voxform:photo"
	eventError      = "voxform:error"
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	engine  *usecase.Engine
	store   kv.Store
	cfg     config.Config
	bootErr error
}

func NewApp() *App {
	return &App{}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a)
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.cfg = services.Config
	a.engine = services.Engine
	a.store = services.Store
	a.SessionStateChanged(domain.SessionStateNotStarted, domain.SessionReasonIdle)
}

func (a *App) shutdown(_ context.Context) {
	if a.engine != nil {
		// Best effort; a session that was never started reports as such.
		_ = a.engine.Abandon()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

// StartInspection begins a voice-guided inspection for a machine.
func (a *App) StartInspection(serialNumber string, modelID string) (domain.Status, error) {
	if err := a.requireReady(); err != nil {
		return domain.Status{}, err
	}
	params := usecase.LaunchParams{SerialNumber: serialNumber, ModelID: modelID}
	if err := a.engine.Start(a.ctx, params); err != nil {
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return domain.Status{}, err
	}
	return a.engine.Status(), nil
}

// AbandonInspection discards the active session. Persisted responses survive.
func (a *App) AbandonInspection() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	if err := a.engine.Abandon(); err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return nil
		}
		return err
	}
	return nil
}

// ManualEdit writes a typed field value from the form UI.
func (a *App) ManualEdit(fieldID string, value string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.engine.ManualEdit(fieldID, value)
}

// CapturePhoto decodes a captured camera frame and attaches it to a field.
// Accepts raw base64 or a data URL, returns the photo reference.
func (a *App) CapturePhoto(fieldID string, encoded string) (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	payload, err := decodeCapture(encoded)
	if err != nil {
		a.SessionError(domain.ErrorCodeCapture, err.Error())
		return "", err
	}
	ref, err := a.engine.AttachPhoto(fieldID, payload)
	if err != nil {
		a.SessionError(domain.ErrorCodeCapture, err.Error())
		return "", err
	}
	return ref, nil
}

// GetPhoto returns a stored photo as base64 for UI display.
func (a *App) GetPhoto(fieldID string) (string, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	payload, err := a.engine.LoadPhoto(fieldID)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// SaveSignature stores a signature capture for a signature field.
func (a *App) SaveSignature(fieldID string, dataRef string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.engine.SaveSignature(fieldID, dataRef)
}

// ToggleSection flips a section's expanded flag and returns the new value.
func (a *App) ToggleSection(key string) bool {
	if a.engine == nil {
		return false
	}
	return a.engine.ToggleSection(key)
}

// GetStatus returns the current session status.
func (a *App) GetStatus() domain.Status {
	if a.engine == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.SessionStateNotStarted, Message: a.bootErr.Error()}
		}
		return domain.Status{State: domain.SessionStateNotStarted}
	}
	return a.engine.Status()
}

// GetRecord assembles the exportable inspection record.
func (a *App) GetRecord() (domain.Record, error) {
	if err := a.requireReady(); err != nil {
		return domain.Record{}, err
	}
	return a.engine.Record()
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	return map[string]string{
		"provider":       "Deepgram",
		"model":          a.cfg.Deepgram.Model,
		"language":       a.cfg.Deepgram.Language,
		"rulesFile":      a.cfg.Speech.RulesPath,
		"catalogFile":    a.cfg.Catalog.Path,
		"dataDir":        a.cfg.Session.DataDir,
		"speakerCommand": a.cfg.Speech.SpeakerCommand,
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.engine == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

func decodeCapture(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid photo payload: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty photo payload")
	}
	return payload, nil
}

// SessionStateChanged emits session lifecycle updates to the frontend.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventSession, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
	})
}

// CursorMoved emits the active question position.
func (a *App) CursorMoved(sectionKey string, fieldID string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventCursor, map[string]string{
		"section": sectionKey,
		"field":   fieldID,
	})
}

// TranscriptUpdated emits the live accumulated transcript.
func (a *App) TranscriptUpdated(text string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventTranscript, map[string]string{"text": text})
}

// ResponseChanged emits a field value update.
func (a *App) ResponseChanged(fieldID string, value string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventResponse, map[string]string{
		"field": fieldID,
		"value": value,
	})
}

// PhotoAttached emits a stored photo reference.
func (a *App) PhotoAttached(fieldID string, ref string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventPhoto, map[string]string{
		"field": fieldID,
		"ref":   ref,
	})
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonIdle:
		return "Ready"
	case domain.SessionReasonStarted:
		return "Inspection started"
	case domain.SessionReasonResumed:
		return "Inspection resumed from saved answers"
	case domain.SessionReasonQuestionAsked:
		return "Listening for an answer"
	case domain.SessionReasonPhotoPrompt:
		return "Attach pictures for this section?"
	case domain.SessionReasonPhotosRequested:
		return "Capture photos, then say okay done"
	case domain.SessionReasonPhotosSkipped:
		return "Photos skipped for this section"
	case domain.SessionReasonSectionAdvanced:
		return "Next section"
	case domain.SessionReasonCompleted:
		return "Inspection completed"
	case domain.SessionReasonNoQuestions:
		return "No questions available"
	case domain.SessionReasonAbandoned:
		return "Inspection abandoned"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeSchema:
		return "No checklist for this model"
	case domain.ErrorCodeSpeech:
		return "Speech recognizer issue"
	case domain.ErrorCodeLocation:
		return "Location lookup failed"
	case domain.ErrorCodeCapture:
		return "Photo capture failed"
	case domain.ErrorCodePersistence:
		return "Saving answers failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
