// bmp package implements a reader for uncompressed, bottom-up, 24 bit bitmaps.
package bmp

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

type Pixel struct {
	B, G, R byte
}

// Returns the pixel's channels in R, G, B order
func (p Pixel) RGB() (r, g, b uint8) {
	return p.R, p.G, p.B
}

// Header holds the two file header fields the decoder interprets.
// Neither value is checked against the length of the source.
type Header struct {
	ImageSize   uint32 // Declared size of the whole file, in bytes.
	PixelOffset uint32 // Offset (in bytes) from the start of the file to the pixel array.
}

// Bitmap is a decoded image. Pixels[y][x] is the pixel at column x of
// screen row y, where row 0 is the top of the image.
//
// A Bitmap is never modified after Decode returns it.
type Bitmap struct {
	Header
	Pixels [][]Pixel
}

// Reads and validates the 14 byte file header
func DecodeHeader(r io.Reader) (Header, error) {
	var buf [FileHeaderLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, &ReadError{Op: "header", Err: err}
	}

	// Verify that this is a .BMP file by checking the signature
	if buf[0] != Signature[0] || buf[1] != Signature[1] {
		return Header{}, ErrUnsupportedFileType
	}

	return Header{
		ImageSize:   binary.LittleEndian.Uint32(buf[sizeOffset : sizeOffset+4]),
		PixelOffset: binary.LittleEndian.Uint32(buf[offBitsOffset : offBitsOffset+4]),
	}, nil
}

// Reads a Bitmap (header and pixels) from r
func Decode(r io.ReadSeeker) (*Bitmap, error) {
	// Read File Header
	header, err := DecodeHeader(r)
	if err != nil {
		return nil, err
	}

	// Seek to Pixel Array (OffBits)
	if _, err := r.Seek(int64(header.PixelOffset), io.SeekStart); err != nil {
		return nil, &ReadError{Op: "seek", Err: err}
	}

	pixels := make([][]Pixel, Height)
	row := make([]byte, RowBytes)

	// Rows are stored bottom-up: the first scanline is the last row
	for i := range Height {
		if _, err := io.ReadFull(r, row); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, &ReadError{Op: "pixels", Err: err}
		}

		rowIndex := Height - i - 1
		pixels[rowIndex] = make([]Pixel, Width)
		for col := range Width {
			p := row[col*BytesPerPixel:]
			pixels[rowIndex][col] = Pixel{B: p[0], G: p[1], R: p[2]}
		}
	}

	return &Bitmap{Header: header, Pixels: pixels}, nil
}

// Returns a deep copy of the bitmap
func (b *Bitmap) Copy() *Bitmap {
	newBitmap := Bitmap{Header: b.Header}

	newBitmap.Pixels = make([][]Pixel, len(b.Pixels))
	for row := range b.Pixels {
		newBitmap.Pixels[row] = make([]Pixel, len(b.Pixels[row]))
		copy(newBitmap.Pixels[row], b.Pixels[row])
	}

	return &newBitmap
}

func (b *Bitmap) ColorModel() color.Model {
	return color.NRGBAModel
}

func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

func (b *Bitmap) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return color.NRGBA{}
	}
	p := b.Pixels[y][x]
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// Writes the bitmap's metadata to w (in human-readable format)
func (b *Bitmap) WriteMetadata(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w,
		"Filename: \t%v\n"+
			"Filesize: \t%v bytes\n"+
			"PixelOffset: \t%v bytes\n"+
			"Width: \t\t%v px\n"+
			"Height: \t%v px\n"+
			"BitCount: \t%vbits\n"+
			"PixelCount: \t%v pixels\n",
		name, b.ImageSize, b.PixelOffset, Width, Height, BytesPerPixel*8, Width*Height)
	return err
}
