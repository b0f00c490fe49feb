package usecase

import "voxform/internal/domain"

// LaunchParams identify the machine under inspection. They select the schema
// and back the auto:fixed fields.
type LaunchParams struct {
	SerialNumber string
	ModelID      string
}

func (p LaunchParams) value(param string) string {
	switch param {
	case "serial":
		return p.SerialNumber
	case "model":
		return p.ModelID
	}
	return ""
}

// cursor identifies the field currently awaiting input. step is -1 before
// the session starts.
type cursor struct {
	section int
	step    int
}

// photoFlow is the per-section attach decision sub-state. attach is only
// meaningful once decided is true, and both reset on section change.
type photoFlow struct {
	decided bool
	attach  bool
}

// session is the single active inspection's mutable state. responses and
// photoRefs are the durable parts; everything else is recomputed from the
// schema after a reload.
type session struct {
	params LaunchParams
	schema domain.Schema

	state     domain.SessionState
	cur       cursor
	listening bool
	photo     photoFlow

	responses map[string]string
	photoRefs map[string]string
	expanded  map[string]bool
}

func newSession(params LaunchParams, schema domain.Schema) *session {
	return &session{
		params:    params,
		schema:    schema,
		state:     domain.SessionStateNotStarted,
		cur:       cursor{section: 0, step: -1},
		responses: make(map[string]string),
		photoRefs: make(map[string]string),
		expanded:  make(map[string]bool),
	}
}

func (s *session) currentField() (domain.Field, string, bool) {
	if s.cur.step < 0 || s.cur.section >= len(s.schema.Sections) {
		return domain.Field{}, "", false
	}
	section := s.schema.Sections[s.cur.section]
	if s.cur.step >= len(section.Fields) {
		return domain.Field{}, "", false
	}
	return section.Fields[s.cur.step], section.Key, true
}

// inputMode tells the interpreter what the next settled utterance means.
func (s *session) inputMode() domain.InputMode {
	switch s.state {
	case domain.SessionStateAwaitingPhotoDecision:
		return domain.InputModePhotoDecision
	case domain.SessionStateAttachingPhotos:
		return domain.InputModePhotoAttach
	}
	return domain.InputModeAnswer
}
