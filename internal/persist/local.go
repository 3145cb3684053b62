package persist

import (
	"context"
	"fmt"
	"regexp"

	"github.com/quasilyte/gdata/v2"
)

// gardenObject is the gdata object holding one property per save slot.
const gardenObject = "garden"

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSlot reports whether name can be used as a save slot.
func ValidSlot(name string) bool { return slotPattern.MatchString(name) }

// LocalStore keeps the garden in the per-user data directory managed by
// gdata. A store without a manager runs in degraded mode: loads report
// ErrNotFound and saves are dropped.
type LocalStore struct {
	manager *gdata.Manager
	slot    string
}

// OpenLocal opens gdata storage for appName. On failure it still returns a
// usable degraded store alongside the error.
func OpenLocal(appName, slot string) (*LocalStore, error) {
	if !ValidSlot(slot) {
		return &LocalStore{slot: "default"}, fmt.Errorf("invalid save slot %q", slot)
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &LocalStore{slot: slot}, fmt.Errorf("open local storage: %w", err)
	}
	return NewLocalStore(m, slot), nil
}

// NewLocalStore wraps an existing gdata manager.
func NewLocalStore(m *gdata.Manager, slot string) *LocalStore {
	return &LocalStore{manager: m, slot: slot}
}

// Name implements Store.
func (s *LocalStore) Name() string { return "local:" + s.slot }

// Slot returns the property name the garden is saved under.
func (s *LocalStore) Slot() string { return s.slot }

// Degraded reports whether the store has no backing storage.
func (s *LocalStore) Degraded() bool { return s.manager == nil }

// Load implements Store.
func (s *LocalStore) Load(context.Context) ([]byte, error) {
	if s.manager == nil || !s.manager.ObjectPropExists(gardenObject, s.slot) {
		return nil, ErrNotFound
	}
	data, err := s.manager.LoadObjectProp(gardenObject, s.slot)
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.slot, err)
	}
	return data, nil
}

// Save implements Store.
func (s *LocalStore) Save(_ context.Context, data []byte) error {
	if s.manager == nil {
		return nil
	}
	if err := s.manager.SaveObjectProp(gardenObject, s.slot, data); err != nil {
		return fmt.Errorf("save slot %s: %w", s.slot, err)
	}
	return nil
}
