//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"garden/internal/garden"
	"garden/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the toolbar and the tree counter.
type HUD struct {
	loader *render.Loader
	icons  map[string]*ebiten.Image
	pixel  *ebiten.Image
}

// NewHUD constructs a HUD drawing tool icons from loader.
func NewHUD(loader *render.Loader) *HUD {
	h := &HUD{loader: loader, icons: make(map[string]*ebiten.Image)}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

func (h *HUD) icon(name string) *ebiten.Image {
	if img, ok := h.icons[name]; ok {
		return img
	}
	src, ok := h.loader.Image(name)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	h.icons[name] = img
	return img
}

// Draw paints the toolbar with the equipped tool highlighted and the tree
// counter beneath it.
func (h *HUD) Draw(screen *ebiten.Image, equipped garden.Tool, trees, goal int) {
	face := basicfont.Face7x13
	for _, b := range ToolbarButtons() {
		bg := color.RGBA{R: 32, G: 34, B: 40, A: 200}
		if b.Tool == equipped {
			bg = color.RGBA{R: 230, G: 180, B: 60, A: 230}
		}
		h.fillRect(screen, b.Rect, bg)
		if img := h.icon(b.Icon); img != nil {
			inner := b.Rect.Inset(6)
			sz := img.Bounds().Size()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(inner.Dx())/float64(sz.X), float64(inner.Dy())/float64(sz.Y))
			op.GeoM.Translate(float64(inner.Min.X), float64(inner.Min.Y))
			screen.DrawImage(img, op)
		}
		text.Draw(screen, b.Key, face, b.Rect.Min.X+4, b.Rect.Min.Y+13, color.White)
	}

	bar := ToolbarBounds()
	counter := image.Rect(bar.Min.X, bar.Max.Y+buttonGap, bar.Max.X, bar.Max.Y+buttonGap+24)
	h.fillRect(screen, counter, color.RGBA{R: 32, G: 34, B: 40, A: 200})
	label := fmt.Sprintf("Trees: %d / %d", trees, goal)
	text.Draw(screen, label, face, counter.Min.X+8, counter.Min.Y+16, color.RGBA{R: 220, G: 240, B: 220, A: 255})
}

func (h *HUD) fillRect(dst *ebiten.Image, r image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(h.pixel, op)
}
