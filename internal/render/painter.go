//go:build ebiten

package render

import (
	"image"
	"image/color"

	"garden/internal/camera"
	"garden/internal/core"
	"garden/internal/garden"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	backgroundColor = color.RGBA{R: 107, G: 179, B: 71, A: 255}
	gridLineColor   = color.RGBA{A: 13}
	viewportColor   = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

const waterAlpha = 0.6

// Painter draws the visible part of the garden and the minimap.
type Painter struct {
	loader   *Loader
	images   map[string]*ebiten.Image
	cellSize int
	size     core.Size

	minimap    *Minimap
	minimapImg *ebiten.Image
}

// NewPainter creates a painter drawing images from loader.
func NewPainter(loader *Loader, cellSize int, minimap *Minimap) *Painter {
	size := minimap.Size()
	return &Painter{
		loader:     loader,
		images:     make(map[string]*ebiten.Image),
		cellSize:   cellSize,
		size:       size,
		minimap:    minimap,
		minimapImg: ebiten.NewImage(size.W, size.H),
	}
}

// image returns the ebiten image for name, or nil while it is still loading.
func (p *Painter) image(name string) *ebiten.Image {
	if img, ok := p.images[name]; ok {
		return img
	}
	src, ok := p.loader.Image(name)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	p.images[name] = img
	return img
}

// Draw paints terrain, water, plants and the minimap for the current camera.
func (p *Painter) Draw(screen *ebiten.Image, s *garden.Store, cam *camera.Camera, waterFrame int) {
	screen.Fill(backgroundColor)

	grass := p.image("grass")
	sand := p.image("sand")
	water := p.image(WaterFrameName(waterFrame))
	cs := float32(p.cellSize)

	view := VisibleRect(cam, p.cellSize, p.size)
	view.Each(func(c core.Coord) {
		x, y := cam.WorldToScreen(float64(c.Col*p.cellSize), float64(c.Row*p.cellSize))
		if grass != nil {
			p.drawTile(screen, grass, x, y, p.cellSize, 1)
		}
		if s.IsWater(c) {
			p.drawWater(screen, s, c, x, y, sand, water)
		}
		vector.StrokeRect(screen, float32(x), float32(y), cs, cs, 1, gridLineColor, false)
	})

	for _, e := range PlantDrawOrder(s, view) {
		sp, ok := SpriteFor(e.Cell, p.cellSize)
		if !ok {
			continue
		}
		x, y := cam.WorldToScreen(float64(e.Coord.Col*p.cellSize+sp.OffsetX), float64(e.Coord.Row*p.cellSize+sp.OffsetY))
		if !SpriteVisible(x, y, sp, cam.ViewW, cam.ViewH) {
			continue
		}
		if img := p.image(sp.Name); img != nil {
			p.drawTile(screen, img, x, y, sp.Size, 1)
		}
	}

	p.drawMinimap(screen, s, cam)
}

func (p *Painter) drawWater(screen *ebiten.Image, s *garden.Store, c core.Coord, x, y float64, sand, water *ebiten.Image) {
	sx, sy := WaterSource(c, p.cellSize)
	mask := ShoreMask(s, c)
	if mask.Open() {
		if water != nil {
			src := water.SubImage(image.Rect(sx, sy, sx+p.cellSize, sy+p.cellSize)).(*ebiten.Image)
			p.drawTile(screen, src, x, y, p.cellSize, waterAlpha)
		}
		return
	}

	half := p.cellSize / 2
	for q, land := range mask.LandQuadrants() {
		ox, oy := Quadrant(q).Offset(p.cellSize)
		qx, qy := x+float64(ox), y+float64(oy)
		if sand != nil {
			p.drawTile(screen, sand, qx, qy, half, 1)
		}
		if land || water == nil {
			continue
		}
		src := water.SubImage(image.Rect(sx+ox, sy+oy, sx+ox+half, sy+oy+half)).(*ebiten.Image)
		p.drawTile(screen, src, qx, qy, half, waterAlpha)
	}
}

// drawTile draws img scaled to a size x size square at (x, y).
func (p *Painter) drawTile(dst, img *ebiten.Image, x, y float64, size int, alpha float32) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(alpha)
	}
	dst.DrawImage(img, op)
}

func (p *Painter) drawMinimap(screen *ebiten.Image, s *garden.Store, cam *camera.Camera) {
	p.minimap.Update(s)
	p.minimapImg.WritePixels(p.minimap.Pixels())

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	b := p.minimap.Bounds(sw, sh)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(p.minimap.Scale), float64(p.minimap.Scale))
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	screen.DrawImage(p.minimapImg, op)

	vr := p.minimap.ViewportRect(cam, p.cellSize, sw, sh)
	vector.StrokeRect(screen, float32(vr.Min.X), float32(vr.Min.Y), float32(vr.Dx()), float32(vr.Dy()), 1, viewportColor, false)
}
