// Package persist saves and loads the serialized garden, either locally via
// gdata or to a shared REST record.
package persist

import (
	"context"
	"errors"
	"log"

	"garden/internal/config"
	"garden/internal/garden"
)

// ErrNotFound reports that nothing has been saved yet.
var ErrNotFound = errors.New("persist: no saved garden")

// Store moves opaque grid blobs in and out of durable storage.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Name() string
}

// Open picks the remote store for shared sessions and the local store
// otherwise. A shared session without a configured remote falls back to local.
func Open(shared bool, cfg config.PersistConfig) Store {
	if shared {
		if cfg.Remote.Shared() {
			return NewRemoteStore(cfg.Remote)
		}
		log.Printf("[persist] shared mode requested but no remote configured, using local storage")
	}
	local, err := OpenLocal(cfg.AppName, cfg.Slot)
	if err != nil {
		log.Printf("[persist] %v (running without local saves)", err)
	}
	return local
}

// LoadGarden reads and decodes a garden of side n. Missing or broken data
// yields an empty garden.
func LoadGarden(ctx context.Context, st Store, n int) *garden.Store {
	data, err := st.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Printf("[persist] %s: nothing saved yet, starting empty", st.Name())
		return garden.NewStore(n)
	case err != nil:
		log.Printf("[persist] %s: load failed: %v (starting empty)", st.Name(), err)
		return garden.NewStore(n)
	}
	s, err := garden.DecodeStrict(data, n)
	if err != nil {
		log.Printf("[persist] %s: %v (starting empty)", st.Name(), err)
		return garden.NewStore(n)
	}
	return s
}
