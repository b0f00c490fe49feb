// Package deepgram implements the continuous speech source on top of the
// Deepgram streaming websocket, feeding it microphone PCM and folding the
// partial/final results into cumulative transcript snapshots.
package deepgram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"voxform/internal/audio"
)

// Config controls the Deepgram websocket and microphone settings.
type Config struct {
	APIKey      string
	APIBaseURL  string
	Model       string
	Language    string
	SmartFormat bool

	Audio     audio.Config
	ChunkSize int
}

// Source is a continuous transcription source. While started it emits the
// whole accumulated utterance on every recognizer update; Reset clears the
// accumulation so the next snapshot starts empty.
type Source struct {
	cfg       Config
	snapshots chan string

	// errFn receives transport failures; the session keeps going without
	// speech rather than dying.
	errFn func(error)

	mu      sync.Mutex
	finals  []string
	partial string
	cancel  context.CancelFunc
	conn    *websocket.Conn
	capture *audio.Stream
	done    chan struct{}

	writeMu sync.Mutex
}

// NewSource creates a stopped Source. onError may be nil.
func NewSource(cfg Config, onError func(error)) *Source {
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "https://api.deepgram.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &Source{
		cfg:       cfg,
		snapshots: make(chan string, 64),
		errFn:     onError,
	}
}

// Snapshots is the cumulative transcript stream. The channel is owned by the
// Source and survives Start/Stop cycles.
func (s *Source) Snapshots() <-chan string {
	return s.snapshots
}

// Start dials the websocket and begins streaming microphone audio.
func (s *Source) Start(ctx context.Context) error {
	if strings.TrimSpace(s.cfg.APIKey) == "" {
		return errors.New("DEEPGRAM_API_KEY is not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return errors.New("speech source already started")
	}

	wsURL, err := buildListenURL(s.cfg)
	if err != nil {
		return err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+s.cfg.APIKey)

	sessionCtx, cancel := context.WithCancel(ctx)

	conn, _, err := websocket.DefaultDialer.DialContext(sessionCtx, wsURL, headers)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to connect to Deepgram websocket: %w", err)
	}

	capture, err := audio.Start(sessionCtx, s.cfg.Audio)
	if err != nil {
		_ = conn.Close()
		cancel()
		return err
	}

	s.cancel = cancel
	s.conn = conn
	s.capture = capture
	s.finals = nil
	s.partial = ""
	s.done = make(chan struct{})

	go s.readLoop(conn, s.done)
	go s.pumpAudio(conn, capture)
	go func() {
		<-sessionCtx.Done()
		_ = s.Stop()
	}()

	return nil
}

// Stop tears down the capture and websocket. Safe to call when stopped.
func (s *Source) Stop() error {
	s.mu.Lock()
	conn, capture, cancel, done := s.conn, s.capture, s.cancel, s.done
	s.conn, s.capture, s.cancel, s.done = nil, nil, nil, nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	cancel()
	_ = capture.Stop()
	s.writeMu.Lock()
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`))
	s.writeMu.Unlock()
	err := conn.Close()
	<-done
	return err
}

// Reset clears the accumulated transcript buffer.
func (s *Source) Reset() {
	s.mu.Lock()
	s.finals = nil
	s.partial = ""
	s.mu.Unlock()
}

func (s *Source) pumpAudio(conn *websocket.Conn, capture *audio.Stream) {
	buf := make([]byte, s.cfg.ChunkSize)
	for {
		n, err := capture.Read(buf)
		if n > 0 {
			s.writeMu.Lock()
			writeErr := conn.WriteMessage(websocket.BinaryMessage, buf[:n])
			s.writeMu.Unlock()
			if writeErr != nil {
				s.errFn(fmt.Errorf("failed to stream audio: %w", writeErr))
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Source) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if !isExpectedClose(err) {
				s.errFn(fmt.Errorf("failed to read recognizer event: %w", err))
			}
			return
		}

		var response listenResponse
		if err := json.Unmarshal(payload, &response); err != nil {
			continue
		}

		if strings.EqualFold(response.Type, "Error") {
			message := strings.TrimSpace(response.Message)
			if message == "" {
				message = "deepgram returned an unknown error"
			}
			s.errFn(errors.New(message))
			return
		}

		text := extractTranscript(response)
		if text == "" {
			continue
		}
		s.fold(text, response.IsFinal || response.SpeechFinal)
	}
}

// fold merges a recognizer result into the cumulative transcript and emits
// a snapshot.
func (s *Source) fold(text string, isFinal bool) {
	s.mu.Lock()
	if isFinal {
		s.finals = append(s.finals, text)
		s.partial = ""
	} else {
		s.partial = text
	}
	snapshot := strings.TrimSpace(strings.Join(append(append([]string(nil), s.finals...), s.partial), " "))
	s.mu.Unlock()

	if snapshot == "" {
		return
	}
	select {
	case s.snapshots <- snapshot:
	default:
	}
}

func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) || errors.Is(err, net.ErrClosed)
}

type listenResponse struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`

	Channel struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func extractTranscript(response listenResponse) string {
	if len(response.Channel.Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(response.Channel.Alternatives[0].Transcript)
}

func buildListenURL(cfg Config) (string, error) {
	base := strings.TrimSpace(cfg.APIBaseURL)
	if strings.HasPrefix(base, "https://") {
		base = "wss://" + strings.TrimPrefix(base, "https://")
	} else if strings.HasPrefix(base, "http://") {
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	base = strings.TrimRight(base, "/")

	listenURL, err := url.Parse(base + "/listen")
	if err != nil {
		return "", fmt.Errorf("invalid Deepgram API base URL: %w", err)
	}

	sampleRate := cfg.Audio.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	channels := cfg.Audio.Channels
	if channels <= 0 {
		channels = 1
	}

	query := listenURL.Query()
	query.Set("model", cfg.Model)
	query.Set("encoding", "linear16")
	query.Set("sample_rate", fmt.Sprintf("%d", sampleRate))
	query.Set("channels", fmt.Sprintf("%d", channels))
	query.Set("interim_results", "true")
	query.Set("smart_format", fmt.Sprintf("%t", cfg.SmartFormat))
	if cfg.Language != "" {
		query.Set("language", cfg.Language)
	}
	listenURL.RawQuery = query.Encode()
	return listenURL.String(), nil
}
