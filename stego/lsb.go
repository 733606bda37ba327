// Package stego to implement LSB on raster images
package stego

import (
	"fmt"

	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
)

// LSBSteganography embeds and extracts framed payloads in the low-order
// bits of one color channel, visiting pixels in row-major order.
type LSBSteganography struct {
	config *models.StegoConfig
}

// NewLSBSteganography validates the config and returns a codec instance.
func NewLSBSteganography(config *models.StegoConfig) (*LSBSteganography, error) {
	if config.BitsPerPixel < 1 || config.BitsPerPixel > 3 {
		return nil, fmt.Errorf("%w: bits per pixel must be 1, 2, or 3 (got %d)",
			ErrInvalidParameter, config.BitsPerPixel)
	}
	if config.Channel < models.ChannelRed || config.Channel > models.ChannelBlue {
		return nil, fmt.Errorf("%w: channel must be 0 (Red), 1 (Green), or 2 (Blue) (got %d)",
			ErrInvalidParameter, int(config.Channel))
	}
	return &LSBSteganography{config: config}, nil
}

// Embed writes the framed payload into img in place and returns embedding
// statistics. The capacity check happens strictly before the first pixel
// is mutated; on error the image is untouched.
func (lsb *LSBSteganography) Embed(img *imaging.RasterImage, payload []byte) (*models.EmbedStats, error) {
	header := IntToBits(uint32(len(payload)*8), HeaderBits)
	allBits := append(header, BytesToBits(payload)...)
	totalBits := len(allBits)

	bpp := lsb.config.BitsPerPixel
	maxBits := img.Width * img.Height * bpp
	if totalBits > maxBits {
		return nil, fmt.Errorf(
			"%w: need %d bits but the image holds only %d at %d bit(s) per pixel; "+
				"use a smaller payload, a larger cover image, another channel, or more bits per pixel",
			ErrCapacityExceeded, totalBits, maxBits, bpp)
	}

	mask := uint8(1<<bpp) - 1
	ch := int(lsb.config.Channel)

	bitIndex := 0
	pixelsModified := 0
	totalPixels := img.Width * img.Height
	for i := 0; i < totalPixels && bitIndex < totalBits; i++ {
		// The final group is right-padded with zero bits when the
		// stream is shorter than bpp.
		var chunk uint8
		for j := 0; j < bpp; j++ {
			chunk <<= 1
			if bitIndex+j < totalBits {
				chunk |= allBits[bitIndex+j]
			}
		}

		pos := i*imaging.Channels + ch
		img.Pix[pos] = (img.Pix[pos] &^ mask) | chunk

		bitIndex += bpp
		pixelsModified++
	}

	return &models.EmbedStats{
		PayloadBytes:        len(payload),
		PayloadBits:         len(payload) * 8,
		HeaderBits:          HeaderBits,
		TotalBitsEncoded:    totalBits,
		BitsPerPixel:        bpp,
		ChannelUsed:         lsb.config.Channel.String(),
		PixelsModified:      pixelsModified,
		CapacityUsedPercent: float64(totalBits) / float64(maxBits) * 100,
	}, nil
}

// Extract reads the 32-bit header and then exactly the declared number of
// payload bits from img. It fails with ErrCorruptedPayload when the image
// runs out before the declared payload is complete, rather than returning
// a truncated result.
func (lsb *LSBSteganography) Extract(img *imaging.RasterImage) ([]byte, error) {
	bpp := lsb.config.BitsPerPixel
	mask := uint8(1<<bpp) - 1
	ch := int(lsb.config.Channel)
	totalPixels := img.Width * img.Height

	bits := make([]byte, 0, HeaderBits+bpp)
	pixelIndex := 0
	readUpTo := func(need int) {
		for len(bits) < need && pixelIndex < totalPixels {
			v := img.Pix[pixelIndex*imaging.Channels+ch] & mask
			for j := bpp - 1; j >= 0; j-- {
				bits = append(bits, (v>>j)&1)
			}
			pixelIndex++
		}
	}

	readUpTo(HeaderBits)
	if len(bits) < HeaderBits {
		return nil, fmt.Errorf("%w: image exhausted before the %d-bit header was read",
			ErrCorruptedPayload, HeaderBits)
	}

	payloadBits := int(BitsToInt(bits[:HeaderBits]))
	readUpTo(HeaderBits + payloadBits)
	if len(bits) < HeaderBits+payloadBits {
		return nil, fmt.Errorf("%w: header declares %d payload bits but only %d remain in the image",
			ErrCorruptedPayload, payloadBits, len(bits)-HeaderBits)
	}

	// Over-read padding bits from the final pixel group are discarded here.
	return BitsToBytes(bits[HeaderBits : HeaderBits+payloadBits]), nil
}
