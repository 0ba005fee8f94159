// Filters perform color manipulation and per-pixel operations.
// Bitmaps are never modified, every filter returns a new one.
package filters

import (
	"errors"
	"fmt"

	"github.com/anas-shakeel/bmpview/internal/bmp"
	"github.com/anas-shakeel/bmpview/internal/utils"
)

// Names lists the filters Apply accepts
var Names = []string{"none", "invert", "grayscale", "luma", "brightness", "contrast"}

// Applies the named filter. factor and method are only used by
// "brightness" (both) and "contrast" (factor).
func Apply(name string, b *bmp.Bitmap, factor float64, method string) (*bmp.Bitmap, error) {
	switch name {
	case "", "none":
		return b, nil
	case "invert":
		return Invert(b), nil
	case "grayscale":
		return Grayscale(b), nil
	case "luma":
		return GrayscaleLuma(b), nil
	case "brightness":
		return Brightness(b, factor, method)
	case "contrast":
		return Contrast(b, factor), nil
	}
	return nil, fmt.Errorf("unknown filter %q", name)
}

// Maps every pixel of a copy of b through fn
func mapPixels(b *bmp.Bitmap, fn func(p bmp.Pixel) bmp.Pixel) *bmp.Bitmap {
	out := b.Copy()
	for row := range out.Pixels {
		for col := range out.Pixels[row] {
			out.Pixels[row][col] = fn(out.Pixels[row][col])
		}
	}
	return out
}

// Inverts (negates) the bitmap image
func Invert(b *bmp.Bitmap) *bmp.Bitmap {
	return mapPixels(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{B: 255 - p.B, G: 255 - p.G, R: 255 - p.R}
	})
}

// Converts a bitmap to Black-and-White
func Grayscale(b *bmp.Bitmap) *bmp.Bitmap {
	return mapPixels(b, func(p bmp.Pixel) bmp.Pixel {
		avg := byte(utils.Average(int(p.R), int(p.G), int(p.B)))
		return bmp.Pixel{B: avg, G: avg, R: avg}
	})
}

// Converts a bitmap to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(b *bmp.Bitmap) *bmp.Bitmap {
	return mapPixels(b, func(p bmp.Pixel) bmp.Pixel {
		L := byte(int(p.R)*299/1000 + int(p.G)*587/1000 + int(p.B)*114/1000)
		return bmp.Pixel{B: L, G: L, R: L}
	})
}

// Adjusts the Brightness of a Bitmap.
//
// method can be "add" (adds value to each channel) or "multiply" (multiplies each channel by value).
// Pixel values are clipped to [0, 255].
func Brightness(b *bmp.Bitmap, factor float64, method string) (*bmp.Bitmap, error) {
	var operation func(x, y float64) float64

	// Select an operation of brightness (additive or multiplicative)
	switch method {
	case "add":
		operation = func(x, y float64) float64 {
			return x + y
		}
	case "multiply":
		operation = func(x, y float64) float64 {
			return x * y
		}
	default:
		return nil, errors.New("invalid method: method must be add or multiply")
	}

	return mapPixels(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{
			B: utils.ClampByte(operation(float64(p.B), factor)),
			G: utils.ClampByte(operation(float64(p.G), factor)),
			R: utils.ClampByte(operation(float64(p.R), factor)),
		}
	}), nil
}

// Adjusts the Contrast of a Bitmap.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(b *bmp.Bitmap, factor float64) *bmp.Bitmap {
	// Compute mean for each channel
	var sumR, sumG, sumB, totalPixels int
	for _, row := range b.Pixels {
		for _, p := range row {
			sumR += int(p.R)
			sumG += int(p.G)
			sumB += int(p.B)
		}
		totalPixels += len(row)
	}
	if totalPixels == 0 {
		return b.Copy()
	}
	meanR := float64(sumR / totalPixels) // Average of all R pixels
	meanG := float64(sumG / totalPixels) // Average of all G pixels
	meanB := float64(sumB / totalPixels) // Average of all B pixels

	// Apply contrast
	return mapPixels(b, func(p bmp.Pixel) bmp.Pixel {
		return bmp.Pixel{
			B: utils.ClampByte(float64(p.B)*factor + (1-factor)*meanB),
			G: utils.ClampByte(float64(p.G)*factor + (1-factor)*meanG),
			R: utils.ClampByte(float64(p.R)*factor + (1-factor)*meanR),
		}
	})
}
