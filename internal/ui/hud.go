//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the control panel to the right of the grid view.
type HUD struct {
	ctrl       Controller
	width      int
	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	buttons      []hudButton
	panelOffsetX int
	message      string
}

type hudButton struct {
	action Action
	rect   image.Rectangle
}

// NewHUD constructs a panel of the given width driving ctrl.
func NewHUD(ctrl Controller, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{ctrl: ctrl, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layoutButtons()
	return h
}

// SetMessage shows msg under the status lines until replaced.
func (h *HUD) SetMessage(msg string) {
	if h != nil {
		h.message = msg
	}
}

// Update handles clicks on the panel buttons. It returns the error of the
// command a click triggered, if any.
func (h *HUD) Update(panelOffsetX int) error {
	if h == nil || h.width <= 0 {
		return nil
	}
	h.panelOffsetX = panelOffsetX
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	if mx < panelOffsetX {
		return nil
	}
	px := mx - panelOffsetX
	for _, b := range h.buttons {
		if pointInRect(px, my, b.rect) && b.action.Enabled(h.ctrl) {
			return Apply(h.ctrl, b.action)
		}
	}
	return nil
}

// Draw paints the panel at offsetX, height pixels tall.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height, population int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Game of Life", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, line := range StatusLines(h.ctrl, population) {
		y += statusSpacing
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	if h.message != "" {
		y += statusSpacing
		text.Draw(h.panel, h.message, face, panelPadding, y, color.RGBA{R: 230, G: 170, B: 90, A: 255})
	}

	state := h.ctrl.State()
	for _, b := range h.buttons {
		h.drawButton(b.rect, b.action.Label(state), b.action.Enabled(h.ctrl))
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutButtons() {
	if h.width <= 0 {
		return
	}
	h.buttons = h.buttons[:0]
	for k, a := range PanelActions {
		top := buttonsTop + k*lineHeight
		rect := image.Rect(panelPadding, top, h.width-panelPadding, top+buttonHeight)
		h.buttons = append(h.buttons, hudButton{action: a, rect: rect})
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonHeight   = 24
	headerBaseline = 18
	statusSpacing  = 18
	buttonsTop     = panelPadding + headerBaseline + 6*statusSpacing + 8
)

// PanelHeight is the minimum height that fits every button.
const PanelHeight = buttonsTop + 8*lineHeight
