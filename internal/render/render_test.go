package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stvp/assert"

	"github.com/anas-shakeel/bmpview/internal/bmp"
)

type point struct {
	x, y    int
	r, g, b uint8
}

type recordingCanvas struct {
	r, g, b   uint8
	points    []point
	presents  int
	failAt    int // fail the n-th DrawPoint when > 0
	onPresent func(n int)
}

func (c *recordingCanvas) SetDrawColor(r, g, b uint8) {
	c.r, c.g, c.b = r, g, b
}

func (c *recordingCanvas) DrawPoint(x, y int) error {
	if c.failAt > 0 && len(c.points)+1 == c.failAt {
		return errors.New("canvas lost")
	}
	c.points = append(c.points, point{x, y, c.r, c.g, c.b})
	return nil
}

func (c *recordingCanvas) Present() error {
	c.presents++
	if c.onPresent != nil {
		c.onPresent(c.presents)
	}
	return nil
}

func generateBitmap() *bmp.Bitmap {
	pixels := make([][]bmp.Pixel, bmp.Height)
	for y := range pixels {
		pixels[y] = make([]bmp.Pixel, bmp.Width)
		for x := range pixels[y] {
			pixels[y][x] = bmp.Pixel{B: uint8(x), G: uint8(y), R: uint8(x ^ y)}
		}
	}
	return &bmp.Bitmap{Header: bmp.Header{ImageSize: 54 + bmp.PixelBytes, PixelOffset: 54}, Pixels: pixels}
}

func TestRenderOrder(t *testing.T) {
	b := &bmp.Bitmap{Pixels: [][]bmp.Pixel{
		{{B: 1, G: 2, R: 3}, {B: 4, G: 5, R: 6}},
		{{B: 7, G: 8, R: 9}, {B: 10, G: 11, R: 12}},
	}}

	c := &recordingCanvas{}
	assert.Nil(t, Render(b, c))
	assert.Equal(t, c.presents, 1)
	assert.Equal(t, c.points, []point{
		{0, 0, 3, 2, 1},
		{1, 0, 6, 5, 4},
		{0, 1, 9, 8, 7},
		{1, 1, 12, 11, 10},
	})
}

func TestRenderCanvasError(t *testing.T) {
	c := &recordingCanvas{failAt: 3}
	err := Render(generateBitmap(), c)
	assert.NotNil(t, err)
	assert.Equal(t, c.presents, 0)
	assert.Equal(t, strings.Contains(err.Error(), "(2,0)"), true)
}

func TestRenderImageCanvas(t *testing.T) {
	b := generateBitmap()
	c := NewImageCanvas(bmp.Width, bmp.Height)

	assert.Nil(t, Render(b, c))
	assert.Equal(t, c.Frames(), 1)

	for y := range bmp.Height {
		for x := range bmp.Width {
			r1, g1, b1, a1 := c.Image().At(x, y).RGBA()
			r2, g2, b2, a2 := b.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestImageCanvasOutOfBounds(t *testing.T) {
	c := NewImageCanvas(2, 2)
	assert.Nil(t, c.DrawPoint(1, 1))
	assert.NotNil(t, c.DrawPoint(2, 0))
	assert.NotNil(t, c.DrawPoint(0, -1))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		close  bool
	}{
		{name: "should stop on quit", events: []Event{{Kind: Quit}}},
		{name: "should stop on escape", events: []Event{{Kind: KeyDown, Key: KeyEscape}}},
		{name: "should ignore other keys", events: []Event{{Kind: KeyDown, Key: "A"}, {Kind: KeyDown, Key: "Return"}, {Kind: Quit}}},
		{name: "should stop when events close", close: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := make(chan Event, len(tt.events))
			for _, ev := range tt.events {
				events <- ev
			}
			if tt.close {
				close(events)
			}

			c := &recordingCanvas{}
			err := Run(context.Background(), generateBitmap(), c, events, time.Hour)
			assert.Nil(t, err)
			assert.Equal(t, c.presents, 1)
			assert.Equal(t, len(c.points), bmp.Width*bmp.Height)
		})
	}
}

func TestRunRedrawsEveryInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &recordingCanvas{}
	c.onPresent = func(n int) {
		c.points = c.points[:0]
		if n == 3 {
			cancel()
		}
	}

	err := Run(ctx, generateBitmap(), c, nil, time.Millisecond)
	assert.Equal(t, errors.Is(err, context.Canceled), true)
	assert.Equal(t, c.presents >= 3, true)
}

func TestRunInvalidInterval(t *testing.T) {
	c := &recordingCanvas{}
	assert.NotNil(t, Run(context.Background(), generateBitmap(), c, nil, 0))
	assert.Equal(t, c.presents, 0)
}

func TestRunCanvasError(t *testing.T) {
	c := &recordingCanvas{failAt: 1}
	assert.NotNil(t, Run(context.Background(), generateBitmap(), c, nil, time.Hour))
}

func TestTerminalCanvas(t *testing.T) {
	b := &bmp.Bitmap{Pixels: [][]bmp.Pixel{
		{{R: 1}, {R: 2}, {R: 3}},
		{{R: 4}, {R: 5}, {R: 6}},
		{{R: 7}, {R: 8}, {R: 9}},
	}}

	var out bytes.Buffer
	assert.Nil(t, Render(b, NewTerminalCanvas(&out, 3, 3, 2)))

	want := "\x1b[48;2;1;0;0m  \x1b[0m\x1b[48;2;3;0;0m  \x1b[0m\n" +
		"\x1b[48;2;7;0;0m  \x1b[0m\x1b[48;2;9;0;0m  \x1b[0m\n"
	assert.Equal(t, out.String(), want)
}

func TestTerminalCanvasStepOne(t *testing.T) {
	var out bytes.Buffer
	assert.Nil(t, Render(generateBitmap(), NewTerminalCanvas(&out, bmp.Width, bmp.Height, 0)))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Equal(t, len(lines), bmp.Height)
	assert.Equal(t, strings.Count(lines[0], "  \x1b[0m"), bmp.Width)
}

func TestExport(t *testing.T) {
	b := generateBitmap()

	for _, scale := range []int{1, 3} {
		var buf bytes.Buffer
		if err := Export(&buf, b, scale); err != nil {
			t.Fatalf("scale %d: could not export: %v", scale, err)
		}

		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("scale %d: could not decode png: %v", scale, err)
		}
		assert.Equal(t, img.Bounds().Dx(), bmp.Width*scale)
		assert.Equal(t, img.Bounds().Dy(), bmp.Height*scale)

		for _, p := range [][2]int{{0, 0}, {1, 1}, {17, 200}, {255, 255}} {
			r1, g1, b1, _ := img.At(p[0]*scale+scale/2, p[1]*scale+scale/2).RGBA()
			r2, g2, b2, _ := b.At(p[0], p[1]).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Errorf("scale %d: pixel %v differs", scale, p)
			}
		}
	}
}

func TestExportInvalidScale(t *testing.T) {
	var buf bytes.Buffer
	assert.NotNil(t, Export(&buf, generateBitmap(), 0))
	assert.Equal(t, buf.Len(), 0)
}
