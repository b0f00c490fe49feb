package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"voxform/internal/domain"
	"voxform/internal/normalize"
	"voxform/internal/ports"
)

// SchemaCatalog resolves model identifiers to checklist schemas.
type SchemaCatalog interface {
	Lookup(modelID string) (domain.Schema, error)
}

// Config controls engine timing.
type Config struct {
	Debounce         time.Duration
	SnapshotInterval time.Duration
}

// Engine is the voice-guided navigation and response engine. It owns the one
// active session; every external event (settled utterance, UI action,
// snapshot tick) mutates state as a single mutex-guarded step.
type Engine struct {
	speech   ports.SpeechSource
	speaker  ports.Speaker
	events   ports.EventSink
	catalog  SchemaCatalog
	resolver *Resolver
	saver    *Saver
	rules    *normalize.Engine
	settler  *Settler
	cfg      Config

	mu         sync.Mutex
	current    *session
	cancel     context.CancelFunc
	generation int
}

func NewEngine(
	speech ports.SpeechSource,
	speaker ports.Speaker,
	events ports.EventSink,
	catalog SchemaCatalog,
	resolver *Resolver,
	saver *Saver,
	rules *normalize.Engine,
	cfg Config,
) *Engine {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 2 * time.Second
	}
	if cfg.SnapshotInterval <= 0 {
		cfg.SnapshotInterval = time.Second
	}
	e := &Engine{
		speech:   speech,
		speaker:  speaker,
		events:   events,
		catalog:  catalog,
		resolver: resolver,
		saver:    saver,
		rules:    rules,
		cfg:      cfg,
	}
	e.settler = NewSettler(cfg.Debounce, e.handleSettled)
	go e.consumeSnapshots()
	return e
}

func (e *Engine) consumeSnapshots() {
	for text := range e.speech.Snapshots() {
		e.ObserveTranscript(text)
	}
}

// ObserveTranscript feeds one cumulative transcript snapshot into the
// debouncer and mirrors it to the UI.
func (e *Engine) ObserveTranscript(text string) {
	e.mu.Lock()
	listening := e.current != nil && e.current.listening
	e.mu.Unlock()

	if !listening {
		return
	}
	e.events.TranscriptUpdated(text)
	e.settler.Observe(text)
}

// Start begins a new inspection session for the given launch parameters,
// restoring any persisted responses first. An unknown model identifier is a
// notice, not a failure; the session continues with an empty schema.
func (e *Engine) Start(ctx context.Context, params LaunchParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardownLocked()

	sch, err := e.catalog.Lookup(params.ModelID)
	if err != nil {
		if !errors.Is(err, domain.ErrSchemaNotFound) {
			return err
		}
		e.events.SessionError(domain.ErrorCodeSchema, fmt.Sprintf("no checklist for model %q", params.ModelID))
		sch = domain.Schema{}
	}

	s := newSession(params, sch)
	reason := domain.SessionReasonStarted
	responses, photoRefs, loadErr := e.saver.Load()
	if loadErr != nil {
		e.events.SessionError(domain.ErrorCodePersistence, loadErr.Error())
	} else {
		s.responses = responses
		s.photoRefs = photoRefs
		if len(responses) > 0 || len(photoRefs) > 0 {
			reason = domain.SessionReasonResumed
		}
	}
	e.current = s

	if sch.Empty() {
		s.state = domain.SessionStateCompleted
		e.speaker.Speak("No questions available")
		e.events.SessionStateChanged(domain.SessionStateCompleted, domain.SessionReasonNoQuestions)
		return nil
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.generation++
	gen := e.generation

	e.resolveAutoFields(sessionCtx, gen, s)

	if err := e.speech.Start(sessionCtx); err != nil {
		// Voice is degraded but manual editing still works.
		e.events.SessionError(domain.ErrorCodeSpeech, err.Error())
	}
	e.speech.Reset()
	s.listening = true
	e.settler.SetListening(true)

	e.events.SessionStateChanged(domain.SessionStateAwaitingAnswer, reason)
	e.advance(0, 0)

	go e.snapshotLoop(sessionCtx, gen)
	return nil
}

// resolveAutoFields eagerly computes every auto field so they self-display
// before the cursor reaches them. Geolocation resolves asynchronously; a
// result arriving after the session changed is discarded.
func (e *Engine) resolveAutoFields(ctx context.Context, gen int, s *session) {
	for _, section := range s.schema.Sections {
		for _, field := range section.Fields {
			if !field.Kind.Auto() {
				continue
			}
			if field.Kind == domain.FieldKindAutoGeo {
				go e.resolveGeo(ctx, gen, field)
				continue
			}
			value := e.resolver.Resolve(ctx, field, s.params)
			s.responses[field.ID] = value
			e.events.ResponseChanged(field.ID, value)
		}
	}
}

func (e *Engine) resolveGeo(ctx context.Context, gen int, field domain.Field) {
	value := e.resolver.Resolve(ctx, field, LaunchParams{})

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != gen || e.current == nil {
		return
	}
	e.current.responses[field.ID] = value
	e.events.ResponseChanged(field.ID, value)
}

// handleSettled is the reducer for settled utterances.
func (e *Engine) handleSettled(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil || !s.listening {
		return
	}

	text := e.rules.Apply(raw)
	cmd := Classify(text, s.inputMode())

	switch cmd.Kind {
	case domain.CommandReset:
		e.speech.Reset()
		e.settler.Cancel()

	case domain.CommandAdvance:
		e.speech.Reset()
		e.advance(s.cur.section, s.cur.step+1)

	case domain.CommandAnswer:
		field, _, ok := s.currentField()
		if !ok || field.Kind != domain.FieldKindText {
			return
		}
		// Last settled utterance wins; no merge with prior values.
		s.responses[field.ID] = cmd.Text
		e.events.ResponseChanged(field.ID, cmd.Text)

	case domain.CommandDecideYes:
		s.photo = photoFlow{decided: true, attach: true}
		s.state = domain.SessionStateAttachingPhotos
		e.speech.Reset()
		e.speaker.Speak("Capture the photos, then say okay done.")
		e.events.SessionStateChanged(domain.SessionStateAttachingPhotos, domain.SessionReasonPhotosRequested)

	case domain.CommandDecideNo:
		s.photo = photoFlow{decided: true, attach: false}
		e.speech.Reset()
		e.events.SessionStateChanged(s.state, domain.SessionReasonPhotosSkipped)
		e.advance(s.cur.section, s.cur.step+1)

	case domain.CommandConfirmDone:
		e.speech.Reset()
		e.advance(s.cur.section, s.cur.step+1)
	}
}

// advance scans forward from (section, step) for the next field that needs
// operator input, resolving and passing over auto fields, skipping signature
// fields (captured out-of-band), and gating photo fields on the per-section
// attach decision. Runs as a plain loop so there are no suspension points
// mid-transition.
func (e *Engine) advance(section int, step int) {
	s := e.current
	sch := s.schema

	for {
		if section >= len(sch.Sections) {
			e.completeLocked(domain.SessionReasonCompleted, "Inspection completed")
			return
		}
		fields := sch.Sections[section].Fields
		if step >= len(fields) {
			section++
			step = 0
			s.photo = photoFlow{}
			if section < len(sch.Sections) {
				s.expanded[sch.Sections[section].Key] = true
			}
			continue
		}

		field := fields[step]
		sectionKey := sch.Sections[section].Key

		switch {
		case field.Kind.Auto():
			s.cur = cursor{section: section, step: step}
			e.events.CursorMoved(sectionKey, field.ID)
			step++

		case field.Kind == domain.FieldKindSignature:
			step++

		case field.Kind == domain.FieldKindPhoto:
			if s.photo.decided && !s.photo.attach {
				step++
				continue
			}
			s.cur = cursor{section: section, step: step}
			e.events.CursorMoved(sectionKey, field.ID)
			if !s.photo.decided {
				s.state = domain.SessionStateAwaitingPhotoDecision
				e.speaker.Speak("Attach pictures for this section?")
				e.events.SessionStateChanged(domain.SessionStateAwaitingPhotoDecision, domain.SessionReasonPhotoPrompt)
				return
			}
			s.state = domain.SessionStateAttachingPhotos
			e.speaker.Speak(field.Prompt + ". Say okay done once the photos are captured.")
			e.events.SessionStateChanged(domain.SessionStateAttachingPhotos, domain.SessionReasonPhotosRequested)
			return

		default:
			s.cur = cursor{section: section, step: step}
			s.state = domain.SessionStateAwaitingAnswer
			e.events.CursorMoved(sectionKey, field.ID)
			e.speaker.Speak(field.Prompt)
			e.events.SessionStateChanged(domain.SessionStateAwaitingAnswer, domain.SessionReasonQuestionAsked)
			return
		}
	}
}

func (e *Engine) completeLocked(reason domain.SessionStateReason, message string) {
	s := e.current
	s.state = domain.SessionStateCompleted
	s.listening = false
	e.settler.SetListening(false)
	if err := e.speech.Stop(); err != nil {
		e.events.SessionError(domain.ErrorCodeSpeech, err.Error())
	}
	e.persistLocked()
	e.speaker.Speak(message)
	e.events.SessionStateChanged(domain.SessionStateCompleted, reason)
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// ManualEdit writes a field value from the UI. Spoken and manual writes share
// the same map; last writer wins.
func (e *Engine) ManualEdit(fieldID string, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil {
		return domain.ErrNoActiveSession
	}
	if _, ok := s.schema.FieldByID(fieldID); !ok {
		return fmt.Errorf("unknown field %q", fieldID)
	}
	s.responses[fieldID] = value
	e.events.ResponseChanged(fieldID, value)
	return nil
}

// AttachPhoto stores a captured photo for a field and returns its reference.
// Written through to the store immediately.
func (e *Engine) AttachPhoto(fieldID string, payload []byte) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil {
		return "", domain.ErrNoActiveSession
	}
	if _, ok := s.schema.FieldByID(fieldID); !ok {
		return "", fmt.Errorf("unknown field %q", fieldID)
	}

	ref := uuid.NewString()
	if err := e.saver.SavePhoto(fieldID, payload); err != nil {
		e.events.SessionError(domain.ErrorCodePersistence, err.Error())
	}
	s.photoRefs[fieldID] = ref
	e.events.PhotoAttached(fieldID, ref)
	e.persistLocked()
	return ref, nil
}

// SaveSignature stores a signature capture as the field's response value.
// Written through to the store immediately.
func (e *Engine) SaveSignature(fieldID string, dataRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil {
		return domain.ErrNoActiveSession
	}
	field, ok := s.schema.FieldByID(fieldID)
	if !ok {
		return fmt.Errorf("unknown field %q", fieldID)
	}
	if field.Kind != domain.FieldKindSignature {
		return fmt.Errorf("field %q is not a signature field", fieldID)
	}
	s.responses[fieldID] = dataRef
	e.events.ResponseChanged(fieldID, dataRef)
	e.persistLocked()
	return nil
}

// ToggleSection flips a section's expanded flag and returns the new value.
func (e *Engine) ToggleSection(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return false
	}
	e.current.expanded[key] = !e.current.expanded[key]
	return e.current.expanded[key]
}

// Abandon discards the active session. Durable responses stay in the store
// so a later session can resume from them.
func (e *Engine) Abandon() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return domain.ErrNoActiveSession
	}
	e.persistLocked()
	e.teardownLocked()
	e.events.SessionStateChanged(domain.SessionStateNotStarted, domain.SessionReasonAbandoned)
	return nil
}

// teardownLocked cancels in-flight timers and queries for the current session
// so stale results can never land on a newer session's state.
func (e *Engine) teardownLocked() {
	e.generation++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.settler.SetListening(false)
	e.settler.Cancel()
	if err := e.speech.Stop(); err != nil {
		e.events.SessionError(domain.ErrorCodeSpeech, err.Error())
	}
	e.current = nil
}

// Status reports the engine's position for the UI.
func (e *Engine) Status() domain.Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil {
		return domain.Status{State: domain.SessionStateNotStarted}
	}
	status := domain.Status{State: s.state, Listening: s.listening}
	if field, sectionKey, ok := s.currentField(); ok {
		status.SectionKey = sectionKey
		status.FieldID = field.ID
	}
	return status
}

// Record assembles the exportable inspection record.
func (e *Engine) Record() (domain.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.current
	if s == nil {
		return domain.Record{}, domain.ErrNoActiveSession
	}
	return AssembleRecord(s.schema, s.params, s.responses, s.photoRefs), nil
}

// LoadPhoto reads a stored photo binary for UI display.
func (e *Engine) LoadPhoto(fieldID string) ([]byte, error) {
	return e.saver.LoadPhoto(fieldID)
}

func (e *Engine) persistLocked() {
	if e.current == nil {
		return
	}
	if err := e.saver.SaveSnapshot(e.current.responses, e.current.photoRefs); err != nil {
		e.events.SessionError(domain.ErrorCodePersistence, err.Error())
	}
}

func (e *Engine) snapshotLoop(ctx context.Context, gen int) {
	ticker := time.NewTicker(e.cfg.SnapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.generation == gen && e.current != nil {
				e.persistLocked()
			}
			e.mu.Unlock()
		}
	}
}
