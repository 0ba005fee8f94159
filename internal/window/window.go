// Package window shows bitmaps in a desktop window.
package window

import (
	"image"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/anas-shakeel/bmpview/internal/render"
)

// Window is a render.Canvas backed by a fyne window. Points are drawn into a
// back buffer owned by the caller's goroutine; Present copies it to the
// displayed image on the UI goroutine.
type Window struct {
	*render.ImageCanvas

	app    fyne.App
	win    fyne.Window
	front  *image.RGBA
	view   *canvas.Image
	events chan render.Event
}

// New creates a hidden window showing a width x height image, enlarged
// scale times.
func New(title string, width, height, scale int) *Window {
	if scale < 1 {
		scale = 1
	}

	w := &Window{
		ImageCanvas: render.NewImageCanvas(width, height),
		app:         app.New(),
		front:       image.NewRGBA(image.Rect(0, 0, width, height)),
		events:      make(chan render.Event, 16),
	}
	draw.Draw(w.front, w.front.Rect, image.White, image.Point{}, draw.Src)

	w.view = canvas.NewImageFromImage(w.front)
	w.view.FillMode = canvas.ImageFillStretch
	w.view.ScaleMode = canvas.ImageScalePixels

	w.win = w.app.NewWindow(title)
	w.win.SetContent(w.view)
	w.win.Resize(fyne.NewSize(float32(width*scale), float32(height*scale)))
	w.win.SetFixedSize(true)
	w.win.CenterOnScreen()

	w.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		w.send(render.Event{Kind: render.KeyDown, Key: string(ev.Name)})
	})

	return w
}

// Drops the event if nobody is listening
func (w *Window) send(ev render.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// Events returns key presses typed into the window.
func (w *Window) Events() <-chan render.Event {
	return w.events
}

func (w *Window) Present() error {
	if err := w.ImageCanvas.Present(); err != nil {
		return err
	}
	fyne.DoAndWait(func() {
		copy(w.front.Pix, w.Image().Pix)
		w.view.Refresh()
	})
	return nil
}

// ShowAndRun shows the window and blocks until the application quits. It
// must be called from the main goroutine.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// Close closes the window, ending ShowAndRun.
func (w *Window) Close() {
	fyne.Do(func() {
		w.win.Close()
	})
}
