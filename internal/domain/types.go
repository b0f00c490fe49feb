package domain

import "errors"

// SessionState models the voice-guided inspection lifecycle.
type SessionState string

const (
	SessionStateNotStarted            SessionState = "not_started"
	SessionStateAwaitingAnswer        SessionState = "awaiting_answer"
	SessionStateAwaitingPhotoDecision SessionState = "awaiting_photo_decision"
	SessionStateAttachingPhotos       SessionState = "attaching_photos"
	SessionStateCompleted             SessionState = "completed"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonIdle            SessionStateReason = "idle"
	SessionReasonStarted         SessionStateReason = "inspection_started"
	SessionReasonResumed         SessionStateReason = "inspection_resumed"
	SessionReasonQuestionAsked   SessionStateReason = "question_asked"
	SessionReasonPhotoPrompt     SessionStateReason = "photo_prompt"
	SessionReasonPhotosRequested SessionStateReason = "photos_requested"
	SessionReasonPhotosSkipped   SessionStateReason = "photos_skipped"
	SessionReasonSectionAdvanced SessionStateReason = "section_advanced"
	SessionReasonCompleted       SessionStateReason = "inspection_completed"
	SessionReasonNoQuestions     SessionStateReason = "no_questions"
	SessionReasonAbandoned       SessionStateReason = "inspection_abandoned"
)

// ErrorCode identifies non-fatal backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup     ErrorCode = "startup"
	ErrorCodeSchema      ErrorCode = "schema"
	ErrorCodeSpeech      ErrorCode = "speech"
	ErrorCodeLocation    ErrorCode = "location"
	ErrorCodeCapture     ErrorCode = "capture"
	ErrorCodePersistence ErrorCode = "persistence"
)

// InputMode tells the interpreter what kind of utterance is expected.
type InputMode string

const (
	InputModeAnswer        InputMode = "answer"
	InputModePhotoDecision InputMode = "photo_decision"
	InputModePhotoAttach   InputMode = "photo_attach"
)

// CommandKind classifies a settled utterance.
type CommandKind string

const (
	CommandAnswer      CommandKind = "answer"
	CommandAdvance     CommandKind = "advance"
	CommandReset       CommandKind = "reset"
	CommandConfirmDone CommandKind = "confirm_done"
	CommandDecideYes   CommandKind = "decide_yes"
	CommandDecideNo    CommandKind = "decide_no"
	CommandIgnore      CommandKind = "ignore"
)

// Command is the interpreter's verdict on a settled utterance.
type Command struct {
	Kind CommandKind
	Text string
}

// Sentinel errors.
var (
	ErrSchemaNotFound  = errors.New("unknown inspection model identifier")
	ErrNoActiveSession = errors.New("no active inspection session")
)

// Status summarizes the current engine status for the UI.
type Status struct {
	State      SessionState `json:"state"`
	Listening  bool         `json:"listening"`
	SectionKey string       `json:"sectionKey,omitempty"`
	FieldID    string       `json:"fieldId,omitempty"`
	Message    string       `json:"message,omitempty"`
}
