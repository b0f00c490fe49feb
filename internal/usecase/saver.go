package usecase

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"voxform/internal/kv"
)

const (
	snapshotKey    = "session:snapshot"
	photoKeyPrefix = "photo:"
)

// snapshot is the lightweight structured part of a session. Photo binaries
// live under their own keys so the frequently-rewritten snapshot stays small.
type snapshot struct {
	Responses map[string]string `msgpack:"responses"`
	PhotoRefs map[string]string `msgpack:"photoRefs"`
}

// Saver mirrors session responses and photos into the durable store.
type Saver struct {
	store kv.Store
}

func NewSaver(store kv.Store) *Saver {
	return &Saver{store: store}
}

// SaveSnapshot writes the structured response snapshot.
func (s *Saver) SaveSnapshot(responses map[string]string, photoRefs map[string]string) error {
	payload, err := msgpack.Marshal(snapshot{Responses: responses, PhotoRefs: photoRefs})
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := s.store.Set(snapshotKey, payload); err != nil {
		return fmt.Errorf("failed to store session snapshot: %w", err)
	}
	return nil
}

// SavePhoto writes one photo binary.
func (s *Saver) SavePhoto(fieldID string, payload []byte) error {
	if err := s.store.Set(photoKeyPrefix+fieldID, payload); err != nil {
		return fmt.Errorf("failed to store photo for %q: %w", fieldID, err)
	}
	return nil
}

// LoadPhoto reads one photo binary back.
func (s *Saver) LoadPhoto(fieldID string) ([]byte, error) {
	return s.store.Get(photoKeyPrefix + fieldID)
}

// Load restores the structured snapshot and verifies each referenced photo
// binary is readable, dropping references whose blob is gone. An absent
// snapshot means a fresh session, not an error.
func (s *Saver) Load() (map[string]string, map[string]string, error) {
	responses := make(map[string]string)
	photoRefs := make(map[string]string)

	payload, err := s.store.Get(snapshotKey)
	if errors.Is(err, kv.ErrNotFound) {
		return responses, photoRefs, nil
	}
	if err != nil {
		return responses, photoRefs, fmt.Errorf("failed to read session snapshot: %w", err)
	}

	var snap snapshot
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		return responses, photoRefs, fmt.Errorf("failed to decode session snapshot: %w", err)
	}

	for id, value := range snap.Responses {
		responses[id] = value
	}
	for id, ref := range snap.PhotoRefs {
		if _, err := s.store.Get(photoKeyPrefix + id); err != nil {
			continue
		}
		photoRefs[id] = ref
	}
	return responses, photoRefs, nil
}
