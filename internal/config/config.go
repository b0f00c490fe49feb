package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config stores runtime configuration for the inspection app.
type Config struct {
	Deepgram DeepgramConfig
	Audio    AudioConfig
	Speech   SpeechConfig
	Geo      GeoConfig
	Catalog  CatalogConfig
	Session  SessionConfig
}

type DeepgramConfig struct {
	APIKey      string
	APIBaseURL  string
	Model       string
	Language    string
	SmartFormat bool
}

type AudioConfig struct {
	RecorderCommand string
	InputFormat     string
	InputDevice     string
	SampleRate      int
	Channels        int
}

type SpeechConfig struct {
	// Debounce is the quiet interval after which an utterance settles.
	Debounce time.Duration

	// SpeakerCommand is the text-to-speech subprocess ("espeak-ng", "say").
	SpeakerCommand string

	// RulesPath points at an optional transcript substitution rules file.
	RulesPath string

	// RuleIterationLimit bounds repeated rule application.
	RuleIterationLimit int
}

type GeoConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type CatalogConfig struct {
	// Path points at a YAML schema catalog; empty uses the built-in one.
	Path string
}

type SessionConfig struct {
	// DataDir holds the BadgerDB session store.
	DataDir string

	// SnapshotInterval is how often responses are mirrored to the store
	// while a session is active.
	SnapshotInterval time.Duration
}

// Load resolves configuration from environment variables and sensible defaults.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.New("could not determine home directory")
	}

	cfg := Config{
		Deepgram: DeepgramConfig{
			APIKey:      strings.TrimSpace(os.Getenv("DEEPGRAM_API_KEY")),
			APIBaseURL:  envOrDefault("DEEPGRAM_API_BASE", "https://api.deepgram.com/v1"),
			Model:       envOrDefault("DEEPGRAM_MODEL", "nova-2"),
			Language:    strings.TrimSpace(os.Getenv("DEEPGRAM_LANGUAGE")),
			SmartFormat: envOrDefaultBool("DEEPGRAM_SMART_FORMAT", true),
		},
		Audio: AudioConfig{
			RecorderCommand: envOrDefault("VOXFORM_FFMPEG_COMMAND", "ffmpeg"),
			InputFormat:     envOrDefault("VOXFORM_AUDIO_INPUT_FORMAT", "pulse"),
			InputDevice:     envOrDefault("VOXFORM_AUDIO_INPUT_DEVICE", "default"),
			SampleRate:      envOrDefaultInt("VOXFORM_SAMPLE_RATE", 16000),
			Channels:        envOrDefaultInt("VOXFORM_CHANNELS", 1),
		},
		Speech: SpeechConfig{
			Debounce:           time.Duration(envOrDefaultInt("VOXFORM_DEBOUNCE_MS", 2000)) * time.Millisecond,
			SpeakerCommand:     envOrDefault("VOXFORM_SPEAKER_COMMAND", "espeak-ng"),
			RulesPath:          strings.TrimSpace(os.Getenv("VOXFORM_RULES_FILE")),
			RuleIterationLimit: envOrDefaultInt("VOXFORM_RULE_ITERATION_LIMIT", 30),
		},
		Geo: GeoConfig{
			Endpoint: envOrDefault("VOXFORM_GEO_ENDPOINT", "https://ipapi.co/json"),
			Timeout:  time.Duration(envOrDefaultInt("VOXFORM_GEO_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
		Catalog: CatalogConfig{
			Path: strings.TrimSpace(os.Getenv("VOXFORM_CATALOG_FILE")),
		},
		Session: SessionConfig{
			DataDir:          envOrDefault("VOXFORM_DATA_DIR", filepath.Join(home, ".local", "share", "voxform")),
			SnapshotInterval: time.Duration(envOrDefaultInt("VOXFORM_SNAPSHOT_INTERVAL_MS", 1000)) * time.Millisecond,
		},
	}

	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = 16000
	}
	if cfg.Audio.Channels <= 0 {
		cfg.Audio.Channels = 1
	}
	if cfg.Speech.Debounce < 100*time.Millisecond {
		cfg.Speech.Debounce = 100 * time.Millisecond
	}
	if cfg.Speech.RuleIterationLimit <= 0 {
		cfg.Speech.RuleIterationLimit = 30
	}
	if cfg.Geo.Timeout <= 0 {
		cfg.Geo.Timeout = 5 * time.Second
	}
	if cfg.Session.SnapshotInterval <= 0 {
		cfg.Session.SnapshotInterval = time.Second
	}

	return cfg, nil
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
