package render

import (
	"fmt"
	"image"
	"image/color"
)

// ImageCanvas draws into an in-memory RGBA image.
type ImageCanvas struct {
	img    *image.RGBA
	color  color.RGBA
	frames int
}

func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		color: color.RGBA{A: 0xff},
	}
}

func (c *ImageCanvas) SetDrawColor(r, g, b uint8) {
	c.color = color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (c *ImageCanvas) DrawPoint(x, y int) error {
	if !(image.Point{x, y}.In(c.img.Rect)) {
		return fmt.Errorf("point (%d,%d) outside %v", x, y, c.img.Rect)
	}
	c.img.SetRGBA(x, y, c.color)
	return nil
}

func (c *ImageCanvas) Present() error {
	c.frames++
	return nil
}

// Image returns the backing image. It is shared, not copied.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

// Frames returns how many times Present was called.
func (c *ImageCanvas) Frames() int {
	return c.frames
}
