// BMP-specific constants and header layout
package bmp

// The BitmapFileHeader is the first 14 bytes of every BMP file.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
//
//	Offset  Length  Field
//	0       2       Type, must be "BM"
//	2       4       Size of the file in bytes (taken verbatim)
//	6       4       Reserved
//	10      4       OffBits, offset to the pixel array
const (
	FileHeaderLen = 14

	sizeOffset    = 2
	offBitsOffset = 10
)

// Signature is the file type every supported file starts with.
var Signature = [2]byte{0x42, 0x4d} // "BM"

// The pixel grid is fixed. Width and height declared in the DIB header are
// never read, every file is decoded as 256x256 at 24 bits per pixel.
const (
	Width         = 256
	Height        = 256
	BytesPerPixel = 3 // Blue, Green, Red

	// Bytes in one scanline. 256*3 is a multiple of 4 so rows carry no padding.
	RowBytes   = Width * BytesPerPixel
	PixelBytes = RowBytes * Height
)
