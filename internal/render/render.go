// Package render draws decoded bitmaps onto point-plotting canvases.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/anas-shakeel/bmpview/internal/bmp"
)

// Canvas is the drawing surface a bitmap is presented on.
type Canvas interface {
	SetDrawColor(r, g, b uint8)
	DrawPoint(x, y int) error
	// Present shows everything drawn since the last Present.
	Present() error
}

type EventKind int

const (
	Quit EventKind = iota + 1
	KeyDown
)

type Event struct {
	Kind EventKind
	Key  string // set for KeyDown, e.g. "Escape"
}

// KeyEscape is the key that ends Run.
const KeyEscape = "Escape"

func (e Event) quits() bool {
	return e.Kind == Quit || (e.Kind == KeyDown && e.Key == KeyEscape)
}

// Render draws every pixel of b at its (column, row) position and presents the frame.
func Render(b *bmp.Bitmap, c Canvas) error {
	for y, row := range b.Pixels {
		for x, p := range row {
			c.SetDrawColor(p.RGB())
			if err := c.DrawPoint(x, y); err != nil {
				return fmt.Errorf("draw point (%d,%d): %w", x, y, err)
			}
		}
	}
	return c.Present()
}

// Run renders b immediately and again every interval until a quit event,
// an Escape key press, or events being closed. It returns ctx.Err() if ctx
// is done first.
func Run(ctx context.Context, b *bmp.Bitmap, c Canvas, events <-chan Event, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("invalid frame interval %v", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := Render(b, c); err != nil {
			return err
		}

	wait:
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-events:
				if !ok || ev.quits() {
					return nil
				}
			case <-ticker.C:
				break wait
			}
		}
	}
}
