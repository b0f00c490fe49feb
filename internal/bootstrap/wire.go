package bootstrap

import (
	"voxform/internal/audio"
	"voxform/internal/config"
	"voxform/internal/domain"
	"voxform/internal/geo"
	"voxform/internal/kv"
	"voxform/internal/normalize"
	"voxform/internal/ports"
	"voxform/internal/schema"
	"voxform/internal/speech/deepgram"
	"voxform/internal/speech/say"
	"voxform/internal/usecase"
)

// Services is the assembled runtime graph.
type Services struct {
	Engine *usecase.Engine
	Store  kv.Store
	Config config.Config
}

// Build wires all backend dependencies for the current runtime.
func Build(eventSink ports.EventSink) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}

	rulesEngine, err := normalize.NewEngine(cfg.Speech.RulesPath, cfg.Speech.RuleIterationLimit)
	if err != nil {
		return Services{}, err
	}

	catalog, err := schema.Load(cfg.Catalog.Path)
	if err != nil {
		return Services{}, err
	}

	store, err := kv.NewBadger(kv.BadgerOptions{Dir: cfg.Session.DataDir})
	if err != nil {
		return Services{}, err
	}

	source := deepgram.NewSource(deepgram.Config{
		APIKey:      cfg.Deepgram.APIKey,
		APIBaseURL:  cfg.Deepgram.APIBaseURL,
		Model:       cfg.Deepgram.Model,
		Language:    cfg.Deepgram.Language,
		SmartFormat: cfg.Deepgram.SmartFormat,
		Audio: audio.Config{
			Command:     cfg.Audio.RecorderCommand,
			InputFormat: cfg.Audio.InputFormat,
			InputDevice: cfg.Audio.InputDevice,
			SampleRate:  cfg.Audio.SampleRate,
			Channels:    cfg.Audio.Channels,
		},
	}, func(err error) {
		eventSink.SessionError(domain.ErrorCodeSpeech, err.Error())
	})

	engine := usecase.NewEngine(
		source,
		say.NewSpeaker(cfg.Speech.SpeakerCommand),
		eventSink,
		catalog,
		usecase.NewResolver(
			usecase.SystemClock{},
			geo.NewClient(cfg.Geo.Endpoint, cfg.Geo.Timeout),
			cfg.Geo.Timeout,
		),
		usecase.NewSaver(store),
		rulesEngine,
		usecase.Config{
			Debounce:         cfg.Speech.Debounce,
			SnapshotInterval: cfg.Session.SnapshotInterval,
		},
	)

	return Services{Engine: engine, Store: store, Config: cfg}, nil
}
