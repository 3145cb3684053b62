//go:build ebiten

package app

import (
	"time"

	"garden/internal/core"
	"garden/internal/garden"
	"garden/internal/render"
	"garden/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a garden Session to the ebiten.Game interface. Frames run at
// ebiten's rate; simulation ticks are metered by a FixedStep.
type Game struct {
	session *Session
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	prompt  ui.Prompt
	step    *core.FixedStep

	pressed      bool
	lastX, lastY int
	width        int
	height       int
}

// NewGame constructs a Game for the provided session.
func NewGame(s *Session, loader *render.Loader) *Game {
	cfg := s.Config()
	return &Game{
		session: s,
		painter: render.NewPainter(loader, cfg.Grid.CellSize, s.Minimap),
		hud:     ui.NewHUD(loader),
		overlay: ui.NewOverlay(),
		step:    core.NewFixedStep(cfg.TickInterval(), cfg.Tick.MaxCatchUp),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	s := g.session
	now := time.Now()
	nowMs := now.UnixMilli()

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.Flush()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		s.SelectTool(garden.ToolSeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		s.SelectTool(garden.ToolShovel)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		s.SelectTool(garden.ToolBucket)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Disarm()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reset(now.UnixNano())
	}

	g.handlePointer(nowMs)

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		s.Wheel(-dx, -dy)
	}

	for i, n := 0, g.step.Advance(now); i < n; i++ {
		s.Tick(nowMs)
	}
	if n := s.Notifier(); n != nil {
		g.prompt.Sync(n.Pending())
	}
	return nil
}

func (g *Game) handlePointer(nowMs int64) {
	s := g.session
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if consumed, answer, answered := g.prompt.Click(x, y, g.width, g.height); consumed {
			if answered && s.Notifier() != nil {
				s.Notifier().Respond(answer)
			}
			return
		}
		if tool, ok := ui.HitTool(x, y); ok {
			s.SelectTool(tool)
			return
		}
		s.PointerDown(float64(x), float64(y), nowMs)
		g.pressed = true
		g.lastX, g.lastY = x, y
		return
	}

	if !g.pressed {
		return
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || offscreen(x, y, g.width, g.height) {
		s.PointerUp()
		g.pressed = false
		return
	}
	if x != g.lastX || y != g.lastY {
		s.PointerMove(float64(x), float64(y), nowMs)
		g.lastX, g.lastY = x, y
	}
}

// Draw renders the garden, the HUD and the goal prompt.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	g.painter.Draw(screen, s.Garden, s.Camera, s.WaterFrame())
	g.hud.Draw(screen, s.Tools.Equipped(), s.Trees(), s.GoalTarget())
	g.overlay.Draw(screen, g.prompt)
}

// Layout follows the window size so the camera view always matches it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return g.width, g.height
}
