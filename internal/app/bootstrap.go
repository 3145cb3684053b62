package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"garden/internal/auth"
	"garden/internal/config"
	"garden/internal/notify"
	"garden/internal/persist"
)

// Setup loads configuration, checks the PIN and returns a session loaded from
// the store the PIN selects.
func Setup(ctx context.Context, flags *Config) (*Session, auth.Result, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, auth.Result{}, err
	}
	if flags.Slot != "" {
		cfg.Persist.Slot = flags.Slot
	}

	pin := flags.PIN
	if pin == "" {
		pin = os.Getenv("GARDEN_PIN")
	}
	res, err := auth.NewGate(cfg.Auth).Check(pin)
	if err != nil {
		return nil, res, fmt.Errorf("entry refused: %w", err)
	}
	log.Printf("[auth] entered in %s mode", res.Mode)

	store := persist.Open(res.Mode == auth.Shared, cfg.Persist)
	s := NewSession(Options{
		Config:   cfg,
		Store:    store,
		Notifier: notify.New(cfg.Notify),
		Seed:     flags.Seed,
		Now:      time.Now().UnixMilli(),
		ViewW:    float64(cfg.Window.Width),
		ViewH:    float64(cfg.Window.Height),
	})
	s.Load(ctx)
	if flags.Regen {
		s.Reset(flags.Seed)
	}
	return s, res, nil
}
