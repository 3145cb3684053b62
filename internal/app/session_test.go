package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"garden/internal/config"
	"garden/internal/core"
	"garden/internal/garden"
	"garden/internal/notify"
	"garden/internal/persist"
)

type memStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (m *memStore) Name() string { return "mem" }

func (m *memStore) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, persist.ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// flakyStore rejects the first n saves, where n is failures.
type flakyStore struct {
	memStore
	failures int
	attempts int
}

func (f *flakyStore) Save(ctx context.Context, data []byte) error {
	f.mu.Lock()
	f.attempts++
	fail := f.attempts <= f.failures
	f.mu.Unlock()
	if fail {
		return errors.New("backend unavailable")
	}
	return f.memStore.Save(ctx, data)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Growth.SeedMinMS, cfg.Growth.SeedMaxMS = 5000, 5000
	cfg.Growth.SproutMinMS, cfg.Growth.SproutMaxMS = 3000, 3000
	cfg.Goal.Trees = 2
	return cfg
}

func newTestSession(store persist.Store, n *notify.Notifier) *Session {
	return NewSession(Options{
		Config:   testConfig(),
		Store:    store,
		Notifier: n,
		Seed:     1,
		ViewW:    640,
		ViewH:    480,
	})
}

// cellCenter returns the screen position of the middle of a cell with the
// camera at the origin.
func cellCenter(c core.Coord) (float64, float64) {
	return float64(c.Col*64 + 32), float64(c.Row*64 + 32)
}

func TestGoalFiresOnceThroughSession(t *testing.T) {
	var posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
	}))
	defer srv.Close()
	n := notify.New(config.NotifyConfig{Endpoint: srv.URL})

	s := newTestSession(nil, n)
	s.SelectTool(garden.ToolSeed)
	for _, c := range []core.Coord{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}} {
		x, y := cellCenter(c)
		s.PointerDown(x, y, 0)
		s.PointerUp()
	}
	if s.Garden.Len() != 3 {
		t.Fatalf("expected 3 seeds, got %d", s.Garden.Len())
	}

	fired := 0
	for now := int64(0); now <= 10000; now += 50 {
		before := s.GoalReached()
		s.Tick(now)
		if !before && s.GoalReached() {
			fired++
		}
	}
	if fired != 1 || s.Trees() != 3 {
		t.Fatalf("goal fired %d times with %d trees", fired, s.Trees())
	}
	if !n.Pending() {
		t.Fatalf("notifier should hold a pending prompt")
	}
	n.Respond(notify.Yes)
	n.Wait()
	if posts.Load() != 1 {
		t.Fatalf("expected one post, got %d", posts.Load())
	}
}

func TestBrushStrokePlantsAlongDrag(t *testing.T) {
	s := newTestSession(nil, nil)
	s.SelectTool(garden.ToolSeed)
	s.PointerDown(32, 32, 0)
	for x := 32.0; x <= 32+64*4; x += 16 {
		s.PointerMove(x, 32, 0)
	}
	s.PointerUp()
	if s.Garden.Len() != 5 {
		t.Fatalf("expected a row of 5 seeds, got %d", s.Garden.Len())
	}
	if s.Camera.ScrollX != 0 || s.Brushing() {
		t.Fatalf("brushing must not move the camera")
	}
}

func TestBucketToggleStrokeDoesNotFlicker(t *testing.T) {
	s := newTestSession(nil, nil)
	s.SelectTool(garden.ToolBucket)
	s.PointerDown(32, 32, 0)
	s.PointerMove(40, 40, 0)
	s.PointerMove(50, 50, 0)
	s.PointerUp()
	if !s.Garden.IsWater(core.Coord{}) {
		t.Fatalf("water should stay after one stroke over the cell")
	}
	s.PointerDown(32, 32, 0)
	s.PointerUp()
	if s.Garden.Occupied(core.Coord{}) {
		t.Fatalf("second stroke should toggle the water off")
	}
}

func TestDragWithoutToolPans(t *testing.T) {
	s := newTestSession(nil, nil)
	s.PointerDown(300, 300, 0)
	s.PointerMove(200, 250, 0)
	s.PointerUp()
	if s.Camera.ScrollX != 100 || s.Camera.ScrollY != 50 {
		t.Fatalf("unexpected scroll (%f,%f)", s.Camera.ScrollX, s.Camera.ScrollY)
	}
	if s.Garden.Len() != 0 {
		t.Fatalf("panning must not touch the garden")
	}
	for i := 0; i < 300 && s.Camera.InertiaActive(); i++ {
		s.Tick(int64(i) * 50)
	}
	if s.Camera.InertiaActive() {
		t.Fatalf("inertia did not settle")
	}
}

func TestMinimapClickRecentres(t *testing.T) {
	s := newTestSession(nil, nil)
	b := s.Minimap.Bounds(640, 480)
	s.SelectTool(garden.ToolSeed)
	s.PointerDown(float64(b.Min.X+100), float64(b.Min.Y+100), 0)
	s.PointerUp()
	if s.Garden.Len() != 0 {
		t.Fatalf("minimap click must not plant")
	}
	if s.Camera.ScrollX != 3200-320 || s.Camera.ScrollY != 3200-240 {
		t.Fatalf("unexpected scroll (%f,%f)", s.Camera.ScrollX, s.Camera.ScrollY)
	}
}

func TestSavesAreDebounced(t *testing.T) {
	mem := &memStore{}
	s := newTestSession(mem, nil)
	s.SelectTool(garden.ToolBucket)
	for col := 0; col < 5; col++ {
		x, y := cellCenter(core.Coord{Col: col})
		s.PointerDown(x, y, 0)
		s.PointerUp()
	}
	for now := int64(0); now < 1950; now += 50 {
		s.Tick(now)
	}
	s.Flush()
	saves := mem.count()
	if saves != 1 {
		t.Fatalf("expected only the flush save, got %d", saves)
	}
	s.Flush()
	if mem.count() != 1 {
		t.Fatalf("a clean flush should not save, got %d saves", mem.count())
	}

	mem2 := &memStore{}
	s = newTestSession(mem2, nil)
	s.SelectTool(garden.ToolBucket)
	s.PointerDown(32, 32, 0)
	s.PointerUp()
	for now := int64(0); now <= 6000; now += 50 {
		s.Tick(now)
	}
	s.saver.Wait()
	if mem2.count() != 1 {
		t.Fatalf("one change should produce one save, got %d", mem2.count())
	}

	loaded := newTestSession(mem2, nil)
	loaded.Load(context.Background())
	if !loaded.Garden.IsWater(core.Coord{}) {
		t.Fatalf("saved water cell not restored")
	}
}

func TestResetGeneratesWaterAndClearsPlants(t *testing.T) {
	s := newTestSession(nil, nil)
	s.SelectTool(garden.ToolSeed)
	s.PointerDown(32, 32, 0)
	s.PointerUp()
	report := s.Reset(99)
	if report.WaterCells == 0 {
		t.Fatalf("reset produced no water")
	}
	plants := 0
	s.Garden.Each(func(_ core.Coord, c garden.Cell) {
		if c.IsPlant() {
			plants++
		}
	})
	if plants != 0 {
		t.Fatalf("reset should clear plants")
	}
	if s.Seed() != 99 {
		t.Fatalf("seed not recorded")
	}
}

func TestWaterFrameCycles(t *testing.T) {
	s := newTestSession(nil, nil)
	for i := 0; i < 10; i++ {
		s.Tick(int64(i) * 50)
	}
	if s.WaterFrame() != 1 {
		t.Fatalf("expected frame 1 after 10 ticks, got %d", s.WaterFrame())
	}
	for i := 0; i < 20; i++ {
		s.Tick(int64(i) * 50)
	}
	if s.WaterFrame() != 0 {
		t.Fatalf("expected wrap to frame 0 after 30 ticks, got %d", s.WaterFrame())
	}
}

func TestFailedSaveRetriesNextWindow(t *testing.T) {
	store := &flakyStore{failures: 1}
	s := newTestSession(store, nil)
	s.SelectTool(garden.ToolBucket)
	s.PointerDown(32, 32, 0)
	s.PointerUp()

	for now := int64(0); now <= 5000; now += 50 {
		s.Tick(now)
		s.saver.Wait()
	}
	if store.count() != 1 {
		t.Fatalf("expected the retried save to land, got %d successful saves after %d attempts", store.count(), store.attempts)
	}
	if store.attempts != 2 {
		t.Fatalf("expected one failure and one retry, got %d attempts", store.attempts)
	}

	loaded := newTestSession(store, nil)
	loaded.Load(context.Background())
	if !loaded.Garden.IsWater(core.Coord{}) {
		t.Fatalf("retried save did not persist the water cell")
	}
}
