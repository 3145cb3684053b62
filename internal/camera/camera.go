// Package camera tracks the scroll offset of the viewport over the garden
// world and the drag and inertia state machine that moves it.
package camera

import (
	"math"

	"garden/internal/config"
	"garden/internal/core"
)

// Mode is the state of the drag machine.
type Mode uint8

const (
	Idle Mode = iota
	Dragging
	Inertia
)

func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Inertia:
		return "inertia"
	default:
		return "idle"
	}
}

// Camera holds the scroll position in world pixels. ScrollX and ScrollY always
// lie within [0, World-View], or at 0 when the view is larger than the world.
type Camera struct {
	ScrollX, ScrollY float64
	VelX, VelY       float64

	ViewW, ViewH   float64
	WorldW, WorldH float64

	Decay         float64
	StopThreshold float64
	WheelStep     float64

	mode Mode

	startX, startY             float64
	startScrollX, startScrollY float64
	lastX, lastY               float64
}

// New creates an idle camera at the world origin.
func New(worldW, worldH, viewW, viewH float64, cfg config.CameraConfig) *Camera {
	c := &Camera{
		WorldW:        worldW,
		WorldH:        worldH,
		ViewW:         viewW,
		ViewH:         viewH,
		Decay:         cfg.Decay,
		StopThreshold: cfg.StopThreshold,
		WheelStep:     cfg.WheelStep,
	}
	if c.Decay <= 0 || c.Decay >= 1 {
		c.Decay = 0.94
	}
	if c.StopThreshold <= 0 {
		c.StopThreshold = 0.1
	}
	return c
}

// Mode reports the current drag state.
func (c *Camera) Mode() Mode { return c.mode }

// Dragging reports whether a drag is in progress.
func (c *Camera) Dragging() bool { return c.mode == Dragging }

// InertiaActive reports whether the camera is still coasting after a drag.
func (c *Camera) InertiaActive() bool { return c.mode == Inertia }

// MaxScroll returns the largest legal scroll offsets.
func (c *Camera) MaxScroll() (float64, float64) {
	return math.Max(0, c.WorldW-c.ViewW), math.Max(0, c.WorldH-c.ViewH)
}

func (c *Camera) clamp() {
	maxX, maxY := c.MaxScroll()
	c.ScrollX = math.Min(math.Max(c.ScrollX, 0), maxX)
	c.ScrollY = math.Min(math.Max(c.ScrollY, 0), maxY)
}

// PointerDown starts a drag at screen position (x, y). Any running inertia is
// cancelled.
func (c *Camera) PointerDown(x, y float64) {
	c.mode = Dragging
	c.startX, c.startY = x, y
	c.lastX, c.lastY = x, y
	c.startScrollX, c.startScrollY = c.ScrollX, c.ScrollY
	c.VelX, c.VelY = 0, 0
}

// PointerMove follows the pointer while dragging and records the last
// per-event delta as velocity. Outside a drag it does nothing.
func (c *Camera) PointerMove(x, y float64) {
	if c.mode != Dragging {
		return
	}
	c.ScrollX = c.startScrollX - (x - c.startX)
	c.ScrollY = c.startScrollY - (y - c.startY)
	c.clamp()
	c.VelX = -(x - c.lastX)
	c.VelY = -(y - c.lastY)
	c.lastX, c.lastY = x, y
}

// PointerUp ends a drag and hands the last velocity to inertia.
func (c *Camera) PointerUp() {
	if c.mode != Dragging {
		return
	}
	c.mode = Inertia
	if c.settled() {
		c.stop()
	}
}

// Wheel scrolls by one fixed step per axis in the direction of the deltas.
// Positive values move the view right or down.
func (c *Camera) Wheel(dx, dy float64) {
	c.ScrollX += step(dx) * c.WheelStep
	c.ScrollY += step(dy) * c.WheelStep
	c.clamp()
}

// Tick advances inertia by one simulation tick and reports whether the camera
// moved.
func (c *Camera) Tick() bool {
	if c.mode != Inertia {
		return false
	}
	x, y := c.ScrollX, c.ScrollY
	c.ScrollX += c.VelX
	c.ScrollY += c.VelY
	c.VelX *= c.Decay
	c.VelY *= c.Decay
	c.clamp()
	if c.settled() {
		c.stop()
	}
	return x != c.ScrollX || y != c.ScrollY
}

func (c *Camera) settled() bool {
	return math.Abs(c.VelX) < c.StopThreshold && math.Abs(c.VelY) < c.StopThreshold
}

func (c *Camera) stop() {
	c.mode = Idle
	c.VelX, c.VelY = 0, 0
}

// Resize updates the viewport size and re-clamps the scroll.
func (c *Camera) Resize(w, h float64) {
	c.ViewW, c.ViewH = w, h
	c.clamp()
}

// CenterOn scrolls so that the world point sits in the middle of the view,
// clamped to the world bounds.
func (c *Camera) CenterOn(wx, wy float64) {
	c.ScrollX = wx - c.ViewW/2
	c.ScrollY = wy - c.ViewH/2
	c.clamp()
}

// ScreenToWorld converts a screen position into world pixels.
func (c *Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.ScrollX, y + c.ScrollY
}

// WorldToScreen converts world pixels into a screen position.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx - c.ScrollX, wy - c.ScrollY
}

// ScreenToCell maps a screen position to the grid cell under it. Positions
// that fall outside the grid report false.
func (c *Camera) ScreenToCell(x, y float64, cellSize int, size core.Size) (core.Coord, bool) {
	if cellSize <= 0 {
		return core.Coord{}, false
	}
	wx, wy := c.ScreenToWorld(x, y)
	if wx < 0 || wy < 0 {
		return core.Coord{}, false
	}
	coord := core.Coord{Row: int(wy) / cellSize, Col: int(wx) / cellSize}
	return coord, coord.InBounds(size)
}

func step(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
