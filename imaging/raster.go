// Package imaging converts between encoded image files and the raw RGB
// raster buffers the codec, metrics, and detector operate on.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Channels is fixed at 3 (R, G, B) for every raster handled here.
const Channels = 3

// RasterImage is a decoded image as a flat RGB buffer in row-major order.
// Pix holds Width*Height*3 bytes: the three channel values of pixel (x, y)
// start at (y*Width+x)*3.
type RasterImage struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewRasterImage allocates a zeroed raster of the given dimensions.
func NewRasterImage(width, height int) *RasterImage {
	return &RasterImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// At returns the value of channel ch (0=R, 1=G, 2=B) at pixel (x, y).
func (r *RasterImage) At(x, y, ch int) uint8 {
	return r.Pix[(y*r.Width+x)*Channels+ch]
}

// Set writes the value of channel ch at pixel (x, y).
func (r *RasterImage) Set(x, y, ch int, v uint8) {
	r.Pix[(y*r.Width+x)*Channels+ch] = v
}

// Clone returns a deep copy of the raster.
func (r *RasterImage) Clone() *RasterImage {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &RasterImage{Width: r.Width, Height: r.Height, Pix: pix}
}

// FromImage flattens any decoded image into an RGB raster, dropping alpha.
func FromImage(img image.Image) *RasterImage {
	bounds := img.Bounds()
	r := NewRasterImage(bounds.Dx(), bounds.Dy())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			r.Pix[i] = c.R
			r.Pix[i+1] = c.G
			r.Pix[i+2] = c.B
			i += Channels
		}
	}
	return r
}

// ToImage converts the raster back to an opaque RGBA image.
func (r *RasterImage) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	src := 0
	for y := 0; y < r.Height; y++ {
		dst := y * img.Stride
		for x := 0; x < r.Width; x++ {
			img.Pix[dst] = r.Pix[src]
			img.Pix[dst+1] = r.Pix[src+1]
			img.Pix[dst+2] = r.Pix[src+2]
			img.Pix[dst+3] = 0xFF
			src += Channels
			dst += 4
		}
	}
	return img
}

// Decode parses PNG, BMP, TIFF, or JPEG bytes into an RGB raster and
// reports the source format. JPEG is accepted as input only; embedding
// output always goes through EncodePNG since lossy recompression destroys
// LSB data.
func Decode(data []byte) (*RasterImage, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), format, nil
}

// EncodePNG serializes the raster as a lossless PNG.
func EncodePNG(r *RasterImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.ToImage()); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
