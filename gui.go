package facemark

import (
	"image"
	"math"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/disintegration/imaging"
)

const (
	MaxScreenX = 1920
	MaxScreenY = 1080
)

// Gui displays a single annotated image in a window and blocks the run loop
// until the user acknowledges it with a key press or by closing the window.
type Gui struct {
	img    image.Image
	title  string
	width  float64
	height float64
}

// NewGUI initializes the Gio interface for the annotated image. Images taller
// than the predefined window height are downscaled for display only, retaining
// the aspect ratio; the detection and the saved copies are never affected.
func NewGUI(img image.Image, title string) *Gui {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	newWidth, newHeight := float64(width), float64(height)

	if height > MaxScreenY {
		ratio := math.Min(
			float64(MaxScreenX)/float64(width),
			float64(MaxScreenY)/float64(height),
		)
		newWidth = float64(width) * ratio
		newHeight = float64(height) * ratio

		img = imaging.Resize(img, 0, int(newHeight), imaging.Lanczos)
	}

	return &Gui{
		img:    img,
		title:  title,
		width:  newWidth,
		height: newHeight,
	}
}

// Show runs the Gio event loop until a key press or a DestroyEvent is captured.
func (g *Gui) Show() error {
	w := app.NewWindow(
		app.Title(g.title),
		app.Size(unit.Px(float32(g.width)), unit.Px(float32(g.height))),
	)

	var ops op.Ops
	for {
		switch e := (<-w.Events()).(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			src := paint.NewImageOp(g.img)
			src.Add(gtx.Ops)

			imgWidget := widget.Image{
				Src:   src,
				Scale: 1 / float32(gtx.Px(unit.Dp(1))),
				Fit:   widget.Contain,
			}
			imgWidget.Layout(gtx)

			e.Frame(gtx.Ops)
		case key.Event:
			// Any key acknowledges the image and moves on to the next one.
			if e.State == key.Press {
				w.Close()
			}
		case system.DestroyEvent:
			return e.Err
		}
	}
}
