package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsMatchReferenceBehavior(t *testing.T) {
	cfg := Default()

	if cfg.Grid.Size != 100 || cfg.Grid.CellSize != 64 {
		t.Fatalf("grid = %+v, want size 100 cell 64", cfg.Grid)
	}
	if got := cfg.TickInterval(); got != 50*time.Millisecond {
		t.Fatalf("tick interval = %v, want 50ms", got)
	}
	if got := cfg.DebounceWindow(); got != 2*time.Second {
		t.Fatalf("debounce = %v, want 2s", got)
	}
	if cfg.Growth.CycleMS != 7000 {
		t.Fatalf("cycle = %d, want 7000", cfg.Growth.CycleMS)
	}
	if cfg.Camera.Decay != 0.94 || cfg.Camera.StopThreshold != 0.1 {
		t.Fatalf("camera = %+v", cfg.Camera)
	}
	if cfg.WorldPixels() != 6400 {
		t.Fatalf("world pixels = %d, want 6400", cfg.WorldPixels())
	}
	if cfg.Persist.Remote.Shared() {
		t.Fatal("remote must be disabled by default")
	}
}

func TestLoadOverlaysOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garden.yaml")
	body := "goal:\n  trees: 2\ntools:\n  bucket_policy: place\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Goal.Trees != 2 {
		t.Fatalf("goal = %d, want 2", cfg.Goal.Trees)
	}
	if cfg.Tools.BucketPolicy != BucketPlace {
		t.Fatalf("bucket policy = %q", cfg.Tools.BucketPolicy)
	}
	if cfg.Grid.Size != 100 {
		t.Fatalf("untouched grid size changed to %d", cfg.Grid.Size)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"decay", "camera:\n  decay: 1.5\n", "camera.decay"},
		{"seed range", "growth:\n  seed_min_ms: 9000\n  seed_max_ms: 10\n", "seed range"},
		{"bucket", "tools:\n  bucket_policy: spray\n", "bucket_policy"},
		{"terrain", "terrain:\n  policy: volcanic\n", "terrain.policy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Goal.Trees = 7
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Goal.Trees != 7 {
		t.Fatalf("goal = %d, want 7", loaded.Goal.Trees)
	}
}
