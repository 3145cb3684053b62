package app

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"garden/internal/auth"
)

func TestSetupRejectsWrongPIN(t *testing.T) {
	t.Setenv("GARDEN_PIN", "")
	_, _, err := Setup(context.Background(), &Config{PIN: "0000"})
	if !errors.Is(err, auth.ErrWrongPIN) {
		t.Fatalf("expected ErrWrongPIN, got %v", err)
	}
}

func TestSetupReadsConfigAndRegenerates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garden.yaml")
	data := []byte("grid:\n  size: 40\nauth:\n  local_pin: \"777\"\npersist:\n  app_name: garden_setup_test\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GARDEN_PIN", "777")
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", "garden_setup_test"))
		}
	})

	fs := flag.NewFlagSet("garden", flag.ContinueOnError)
	flags := NewConfig()
	flags.Bind(fs)
	if err := fs.Parse([]string{"-config", path, "-slot", "setup_test", "-regen", "-seed", "5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	s, res, err := Setup(context.Background(), flags)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if res.Mode != auth.Local {
		t.Fatalf("expected local mode, got %s", res.Mode)
	}
	if s.Garden.Size().W != 40 || s.Config().Persist.Slot != "setup_test" {
		t.Fatalf("config not applied")
	}
	if s.Seed() != 5 || s.Garden.Len() == 0 {
		t.Fatalf("-regen should generate terrain from the seed")
	}
}
