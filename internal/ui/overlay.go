//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the goal prompt: the envelope and the yes/no dialog.
type Overlay struct {
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the prompt in its current state.
func (o *Overlay) Draw(screen *ebiten.Image, p Prompt) {
	if p.State == PromptHidden {
		return
	}
	b := screen.Bounds()
	l := LayoutPrompt(b.Dx(), b.Dy())
	face := basicfont.Face7x13

	if p.State == PromptEnvelope {
		o.fill(screen, l.Envelope, color.RGBA{R: 255, G: 107, B: 157, A: 240})
		o.label(screen, "Mail!", l.Envelope, color.White)
		return
	}

	o.fill(screen, b, color.RGBA{A: 120})
	o.fill(screen, l.Dialog, color.RGBA{R: 255, G: 240, B: 245, A: 255})
	text.Draw(screen, "The garden is full of trees.", face, l.Dialog.Min.X+20, l.Dialog.Min.Y+32, color.RGBA{R: 90, G: 30, B: 60, A: 255})
	text.Draw(screen, "Will you be my valentine?", face, l.Dialog.Min.X+20, l.Dialog.Min.Y+52, color.RGBA{R: 90, G: 30, B: 60, A: 255})
	o.fill(screen, l.Yes, color.RGBA{R: 255, G: 107, B: 157, A: 255})
	o.label(screen, "Yes", l.Yes, color.White)
	o.fill(screen, l.No, color.RGBA{R: 180, G: 180, B: 190, A: 255})
	o.label(screen, "No", l.No, color.White)
}

func (o *Overlay) fill(dst *ebiten.Image, r image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}

func (o *Overlay) label(dst *ebiten.Image, s string, r image.Rectangle, c color.Color) {
	face := basicfont.Face7x13
	bounds := text.BoundString(face, s)
	x := r.Min.X + (r.Dx()-bounds.Dx())/2
	y := r.Min.Y + (r.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(dst, s, face, x, y, c)
}
