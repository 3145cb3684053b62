package app

import (
	"context"
	"log"

	"garden/internal/camera"
	"garden/internal/config"
	"garden/internal/core"
	"garden/internal/garden"
	"garden/internal/notify"
	"garden/internal/persist"
	"garden/internal/render"
	"garden/internal/terrain"
)

// waterFrameTicks is how many ticks each water animation frame lasts.
const waterFrameTicks = 10

// Options configure a Session.
type Options struct {
	Config *config.Config
	// Store receives debounced saves. Nil disables saving.
	Store    persist.Store
	Notifier *notify.Notifier
	Seed     int64
	// Now is the session start in epoch ms; it opens the first save window.
	Now          int64
	ViewW, ViewH float64
}

// Session is the simulation context: every component the tick and the input
// handlers touch. It is not safe for concurrent use; the game loop owns it.
type Session struct {
	cfg *config.Config

	Garden  *garden.Store
	Camera  *camera.Camera
	Tools   *garden.Tools
	Minimap *render.Minimap

	growth   garden.Growth
	goal     *garden.Goal
	rng      *core.RNG
	saver    *persist.Saver
	debounce *persist.Debouncer
	notifier *notify.Notifier

	seed       int64
	trees      int
	ticks      int64
	waterFrame int
	brushing   bool
	lastReport terrain.Report
}

// NewSession wires a session with an empty garden.
func NewSession(opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	n := cfg.Grid.Size
	world := float64(cfg.WorldPixels())

	s := &Session{
		cfg:      cfg,
		Garden:   garden.NewStore(n),
		Camera:   camera.New(world, world, opts.ViewW, opts.ViewH, cfg.Camera),
		Minimap:  render.NewMinimap(core.Square(n), cfg.Minimap.Scale, cfg.Minimap.Margin),
		growth:   garden.Growth{CycleMS: cfg.Growth.CycleMS},
		rng:      core.NewRNG(opts.Seed),
		debounce: persist.NewDebouncer(cfg.DebounceWindow(), opts.Now),
		notifier: opts.Notifier,
		seed:     opts.Seed,
	}
	if opts.Store != nil {
		s.saver = persist.NewSaver(opts.Store, cfg.Persist.Remote.Timeout())
	}

	s.Tools = garden.NewTools(s.Garden, s.rng, garden.Durations{
		SeedMin:   cfg.Growth.SeedMinMS,
		SeedMax:   cfg.Growth.SeedMaxMS,
		SproutMin: cfg.Growth.SproutMinMS,
		SproutMax: cfg.Growth.SproutMaxMS,
	}, garden.ParseBucketPolicy(cfg.Tools.BucketPolicy))
	s.Tools.OnChange = func(core.Coord, garden.Tool) {
		s.debounce.Mark()
		s.recount()
	}

	s.goal = &garden.Goal{Target: cfg.Goal.Trees, OnReached: func(trees int) {
		log.Printf("[garden] tree goal reached with %d trees", trees)
		if s.notifier != nil {
			s.notifier.GoalReached()
		}
	}}
	return s
}

// Load replaces the garden with the saved one. Load failures leave an empty
// garden.
func (s *Session) Load(ctx context.Context) {
	if s.saver == nil {
		return
	}
	loaded := persist.LoadGarden(ctx, s.saver.Store(), s.cfg.Grid.Size)
	s.Garden.Clear()
	loaded.Each(func(c core.Coord, cell garden.Cell) {
		s.Garden.Set(c, cell)
	})
	s.trees = s.Garden.CountTrees()
	log.Printf("[garden] loaded %d cells (%d trees) from %s", s.Garden.Len(), s.trees, s.saver.Store().Name())
}

// Tick advances the simulation by one fixed step at now (epoch ms): growth,
// goal check, camera inertia, then a debounced save. A failed save marks the
// garden dirty again so the next window retries it.
func (s *Session) Tick(now int64) {
	s.ticks++
	if s.ticks%waterFrameTicks == 0 {
		s.waterFrame = (s.waterFrame + 1) % 3
	}

	if s.growth.Tick(s.Garden, now) > 0 {
		s.debounce.Mark()
	}
	s.recount()
	s.Camera.Tick()

	if s.saver != nil && s.saver.TakeFailed() {
		s.debounce.Mark()
	}
	if s.saver != nil && s.debounce.Ready(now) {
		s.save()
	}
}

func (s *Session) recount() {
	s.trees = s.Garden.CountTrees()
	s.goal.Check(s.trees)
}

func (s *Session) save() {
	data, err := garden.Encode(s.Garden)
	if err != nil {
		log.Printf("[persist] %v", err)
		return
	}
	s.saver.Save(data)
}

// Flush saves any pending change immediately and waits for in-flight saves.
func (s *Session) Flush() {
	if s.saver == nil {
		return
	}
	if s.debounce.Take() {
		s.save()
	}
	s.saver.Wait()
}

// Reset clears the garden and generates fresh terrain from seed.
func (s *Session) Reset(seed int64) terrain.Report {
	s.seed = seed
	s.Garden.Clear()
	s.Tools.EndStroke()
	s.lastReport = terrain.New(s.Garden, s.cfg.Terrain, seed).Generate()
	if s.lastReport.RiverFailed {
		log.Printf("[terrain] seed %d: %v", seed, terrain.ErrRiverBudget)
	}
	log.Printf("[terrain] seed %d: %d lakes, %d rivers, %d coasts, %d water cells",
		seed, s.lastReport.Lakes, s.lastReport.Rivers, s.lastReport.Coasts, s.lastReport.WaterCells)
	s.recount()
	s.debounce.Mark()
	return s.lastReport
}

// SelectTool toggles tool and returns the tool now held.
func (s *Session) SelectTool(t garden.Tool) garden.Tool {
	s.endBrush()
	return s.Tools.Equip(t)
}

// Disarm drops the held tool.
func (s *Session) Disarm() {
	s.endBrush()
	s.Tools.Disarm()
}

// PointerDown handles a left-button press at screen position (x, y). A press
// on the minimap recentres the camera, a held tool starts a brush stroke and
// anything else starts a drag.
func (s *Session) PointerDown(x, y float64, now int64) {
	if s.MinimapClick(int(x), int(y)) {
		return
	}
	if s.Tools.Equipped() != garden.ToolNone {
		s.brushing = true
		s.Tools.BeginStroke()
		s.brushAt(x, y, now)
		return
	}
	s.Camera.PointerDown(x, y)
}

// PointerMove follows the pointer while a button is held.
func (s *Session) PointerMove(x, y float64, now int64) {
	if s.brushing {
		s.brushAt(x, y, now)
		return
	}
	s.Camera.PointerMove(x, y)
}

// PointerUp ends a brush stroke or a drag.
func (s *Session) PointerUp() {
	if s.brushing {
		s.endBrush()
		return
	}
	s.Camera.PointerUp()
}

func (s *Session) endBrush() {
	s.brushing = false
	s.Tools.EndStroke()
}

func (s *Session) brushAt(x, y float64, now int64) {
	c, ok := s.Camera.ScreenToCell(x, y, s.cfg.Grid.CellSize, s.Garden.Size())
	if !ok {
		return
	}
	s.Tools.Brush(c, now)
}

// Wheel scrolls the camera one step per axis.
func (s *Session) Wheel(dx, dy float64) { s.Camera.Wheel(dx, dy) }

// Resize follows the window size.
func (s *Session) Resize(w, h float64) { s.Camera.Resize(w, h) }

// MinimapClick recentres the camera on the world point under a click inside
// the minimap and reports whether the click landed there.
func (s *Session) MinimapClick(x, y int) bool {
	wx, wy, ok := s.Minimap.ToWorld(x, y, s.cfg.Grid.CellSize, int(s.Camera.ViewW), int(s.Camera.ViewH))
	if !ok {
		return false
	}
	s.Camera.CenterOn(wx, wy)
	return true
}

// Trees returns the tree count from the last tick or mutation.
func (s *Session) Trees() int { return s.trees }

// GoalTarget returns the configured tree goal.
func (s *Session) GoalTarget() int { return s.goal.Target }

// GoalReached reports whether the goal has fired.
func (s *Session) GoalReached() bool { return s.goal.Reached() }

// WaterFrame returns the current water animation frame in 0..2.
func (s *Session) WaterFrame() int { return s.waterFrame }

// Seed returns the seed of the last terrain reset.
func (s *Session) Seed() int64 { return s.seed }

// Brushing reports whether a brush stroke is in progress.
func (s *Session) Brushing() bool { return s.brushing }

// Notifier returns the goal notifier, which may be nil.
func (s *Session) Notifier() *notify.Notifier { return s.notifier }

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }
