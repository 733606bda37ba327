package stego

import (
	"fmt"

	"image-steganography-backend/models"
)

// HeaderBits is the size of the payload-length prefix embedded before the
// payload: a 32-bit big-endian unsigned integer holding the payload bit count.
const HeaderBits = 32

// ComputeCapacity reports how many payload bytes fit in an image of the
// given dimensions at the given bit depth, after reserving the header.
// An image too small even for the header is not an error: it simply has
// MaxBytes 0 and any non-empty embed against it will fail.
func ComputeCapacity(width, height, bitsPerPixel int) (models.CapacityReport, error) {
	if bitsPerPixel < 1 || bitsPerPixel > 3 {
		return models.CapacityReport{}, fmt.Errorf("%w: bits per pixel must be 1, 2, or 3 (got %d)",
			ErrInvalidParameter, bitsPerPixel)
	}

	totalPixels := width * height
	totalBits := totalPixels * bitsPerPixel
	usableBits := totalBits - HeaderBits

	maxBytes := usableBits / 8
	if maxBytes < 0 {
		maxBytes = 0
	}

	return models.CapacityReport{
		ImageDimensions:    fmt.Sprintf("%dx%d", width, height),
		TotalPixels:        totalPixels,
		BitsPerPixel:       bitsPerPixel,
		TotalBitsAvailable: totalBits,
		HeaderBits:         HeaderBits,
		UsableBits:         usableBits,
		MaxBytes:           maxBytes,
	}, nil
}
