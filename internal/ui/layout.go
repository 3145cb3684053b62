// Package ui draws the toolbar, tree counter and goal prompt on top of the
// garden and maps clicks on them back to actions.
package ui

import (
	"image"

	"garden/internal/garden"
	"garden/internal/notify"
)

const (
	panelPadding = 12
	buttonSize   = 56
	buttonGap    = 8
)

// ToolButton is one toolbar slot.
type ToolButton struct {
	Tool  garden.Tool
	Key   string
	Icon  string
	Label string
	Rect  image.Rectangle
}

// ToolbarButtons lays out the tool buttons along the top-left corner.
func ToolbarButtons() []ToolButton {
	buttons := []ToolButton{
		{Tool: garden.ToolSeed, Key: "1", Icon: "seeds", Label: "Seed"},
		{Tool: garden.ToolShovel, Key: "2", Icon: "shovel", Label: "Shovel"},
		{Tool: garden.ToolBucket, Key: "3", Icon: "bucket", Label: "Bucket"},
	}
	for i := range buttons {
		x := panelPadding + i*(buttonSize+buttonGap)
		buttons[i].Rect = image.Rect(x, panelPadding, x+buttonSize, panelPadding+buttonSize)
	}
	return buttons
}

// ToolbarBounds covers every toolbar button.
func ToolbarBounds() image.Rectangle {
	var r image.Rectangle
	for _, b := range ToolbarButtons() {
		r = r.Union(b.Rect)
	}
	return r
}

// HitTool returns the tool whose button contains (x, y).
func HitTool(x, y int) (garden.Tool, bool) {
	p := image.Pt(x, y)
	for _, b := range ToolbarButtons() {
		if p.In(b.Rect) {
			return b.Tool, true
		}
	}
	return garden.ToolNone, false
}

// PromptState is the visible stage of the goal prompt.
type PromptState uint8

const (
	PromptHidden PromptState = iota
	PromptEnvelope
	PromptDialog
)

// Prompt follows the notifier: an envelope appears when the goal is reached,
// clicking it opens a yes/no dialog, and answering closes both.
type Prompt struct {
	State PromptState
}

// Sync shows the envelope while an answer is pending and hides everything
// once it is not.
func (p *Prompt) Sync(pending bool) {
	switch {
	case !pending:
		p.State = PromptHidden
	case p.State == PromptHidden:
		p.State = PromptEnvelope
	}
}

// PromptLayout holds the prompt rectangles for one screen size.
type PromptLayout struct {
	Envelope image.Rectangle
	Dialog   image.Rectangle
	Yes      image.Rectangle
	No       image.Rectangle
}

// LayoutPrompt positions the envelope at the top-right and the dialog in the
// middle of the screen.
func LayoutPrompt(screenW, screenH int) PromptLayout {
	env := image.Rect(screenW-panelPadding-72, panelPadding, screenW-panelPadding, panelPadding+48)
	dw, dh := 320, 140
	dx, dy := (screenW-dw)/2, (screenH-dh)/2
	dialog := image.Rect(dx, dy, dx+dw, dy+dh)
	by := dialog.Max.Y - panelPadding - 32
	yes := image.Rect(dx+40, by, dx+140, by+32)
	no := image.Rect(dialog.Max.X-140, by, dialog.Max.X-40, by+32)
	return PromptLayout{Envelope: env, Dialog: dialog, Yes: yes, No: no}
}

// Click handles a press at (x, y). It reports whether the prompt consumed the
// click and, when a button was hit, the answer given.
func (p *Prompt) Click(x, y, screenW, screenH int) (consumed bool, answer notify.Answer, answered bool) {
	l := LayoutPrompt(screenW, screenH)
	pt := image.Pt(x, y)
	switch p.State {
	case PromptEnvelope:
		if pt.In(l.Envelope) {
			p.State = PromptDialog
			return true, 0, false
		}
	case PromptDialog:
		switch {
		case pt.In(l.Yes):
			p.State = PromptHidden
			return true, notify.Yes, true
		case pt.In(l.No):
			p.State = PromptHidden
			return true, notify.No, true
		}
		// The dialog is modal.
		return true, 0, false
	}
	return false, 0, false
}
