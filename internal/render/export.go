package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/gift"

	"github.com/anas-shakeel/bmpview/internal/bmp"
)

// Export writes b to w as a PNG, enlarged scale times with nearest-neighbor
// resampling so pixels stay sharp.
func Export(w io.Writer, b *bmp.Bitmap, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	var img image.Image = b
	if scale > 1 {
		g := gift.New(gift.Resize(b.Bounds().Dx()*scale, b.Bounds().Dy()*scale, gift.NearestNeighborResampling))
		dst := image.NewNRGBA(g.Bounds(b.Bounds()))
		g.Draw(dst, b)
		img = dst
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
