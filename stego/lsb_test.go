package stego

import (
	"bytes"
	"errors"
	"testing"

	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
)

// uniformImage builds a raster with every channel set to value.
func uniformImage(width, height int, value uint8) *imaging.RasterImage {
	img := imaging.NewRasterImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// gradientImage builds a raster with smooth per-channel gradients.
func gradientImage(width, height int) *imaging.RasterImage {
	img := imaging.NewRasterImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, 0, uint8(x*255/width))
			img.Set(x, y, 1, uint8(y*255/height))
			img.Set(x, y, 2, 128)
		}
	}
	return img
}

func mustCodec(t *testing.T, bpp int, ch models.Channel) *LSBSteganography {
	t.Helper()
	codec, err := NewLSBSteganography(&models.StegoConfig{BitsPerPixel: bpp, Channel: ch})
	if err != nil {
		t.Fatalf("NewLSBSteganography failed: %v", err)
	}
	return codec
}

func TestNewLSBSteganographyInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		bpp  int
		ch   models.Channel
	}{
		{"bpp too low", 0, models.ChannelBlue},
		{"bpp too high", 4, models.ChannelBlue},
		{"channel too low", 1, models.Channel(-1)},
		{"channel too high", 1, models.Channel(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLSBSteganography(&models.StegoConfig{BitsPerPixel: tt.bpp, Channel: tt.ch})
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	payloads := []struct {
		name    string
		payload []byte
	}{
		{"empty", []byte{}},
		{"short ASCII", []byte("hello")},
		{"binary", []byte{0x00, 0x01, 0xFE, 0xFF, 0x80}},
		{"longer text", []byte("The quick brown fox jumps over the lazy dog.")},
	}

	for bpp := 1; bpp <= 3; bpp++ {
		for ch := models.ChannelRed; ch <= models.ChannelBlue; ch++ {
			for _, tt := range payloads {
				t.Run(tt.name, func(t *testing.T) {
					codec := mustCodec(t, bpp, ch)
					img := gradientImage(32, 32)

					if _, err := codec.Embed(img, tt.payload); err != nil {
						t.Fatalf("Embed failed: %v", err)
					}
					got, err := codec.Extract(img)
					if err != nil {
						t.Fatalf("Extract failed: %v", err)
					}
					if !bytes.Equal(got, tt.payload) {
						t.Errorf("extracted %v, want %v (bpp=%d channel=%s)", got, tt.payload, bpp, ch)
					}
				})
			}
		}
	}
}

func TestEmbedScenarioUniformCover(t *testing.T) {
	// 10x10 uniform (128,128,128) cover, 1 bpp, blue channel, "Hi".
	codec := mustCodec(t, 1, models.ChannelBlue)
	img := uniformImage(10, 10, 128)

	stats, err := codec.Embed(img, []byte("Hi"))
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if stats.TotalBitsEncoded != 48 {
		t.Errorf("TotalBitsEncoded = %d, want 48", stats.TotalBitsEncoded)
	}
	if stats.PixelsModified != 48 {
		t.Errorf("PixelsModified = %d, want 48", stats.PixelsModified)
	}
	if stats.ChannelUsed != "Blue" {
		t.Errorf("ChannelUsed = %q, want Blue", stats.ChannelUsed)
	}
	if stats.CapacityUsedPercent != 48.0 {
		t.Errorf("CapacityUsedPercent = %f, want 48.0", stats.CapacityUsedPercent)
	}

	got, err := codec.Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if string(got) != "Hi" {
		t.Errorf("extracted %q, want \"Hi\"", got)
	}
}

func TestEmbedCapacityBoundary(t *testing.T) {
	// 10x10 at 1 bpp: 100 bits total, 68 usable, 8 whole bytes.
	codec := mustCodec(t, 1, models.ChannelBlue)

	fits := bytes.Repeat([]byte{0xA5}, 8)
	img := uniformImage(10, 10, 128)
	if _, err := codec.Embed(img, fits); err != nil {
		t.Fatalf("embedding max_bytes payload failed: %v", err)
	}
	got, err := codec.Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !bytes.Equal(got, fits) {
		t.Errorf("extracted %v, want %v", got, fits)
	}

	tooBig := bytes.Repeat([]byte{0xA5}, 9)
	img = uniformImage(10, 10, 128)
	if _, err := codec.Embed(img, tooBig); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("error = %v, want ErrCapacityExceeded", err)
	}
}

func TestEmbedRejectsBeforeMutating(t *testing.T) {
	codec := mustCodec(t, 1, models.ChannelBlue)
	img := gradientImage(10, 10)
	want := img.Clone()

	if _, err := codec.Embed(img, bytes.Repeat([]byte{0xFF}, 200)); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded", err)
	}
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Error("image was mutated by a rejected embed")
	}
}

func TestEmbedIsolation(t *testing.T) {
	codec := mustCodec(t, 2, models.ChannelGreen)
	cover := gradientImage(20, 20)
	img := cover.Clone()

	payload := []byte("isolated")
	stats, err := codec.Embed(img, payload)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	for i := 0; i < img.Width*img.Height; i++ {
		for ch := 0; ch < imaging.Channels; ch++ {
			old := cover.Pix[i*imaging.Channels+ch]
			got := img.Pix[i*imaging.Channels+ch]
			switch {
			case i >= stats.PixelsModified:
				// Pixels past the payload are untouched in every channel.
				if got != old {
					t.Fatalf("pixel %d channel %d changed past the modified range", i, ch)
				}
			case ch != int(models.ChannelGreen):
				// Non-selected channels are untouched everywhere.
				if got != old {
					t.Fatalf("pixel %d non-selected channel %d changed", i, ch)
				}
			default:
				// Only the low 2 bits of the selected channel may differ.
				if got&^uint8(3) != old&^uint8(3) {
					t.Fatalf("pixel %d green high bits changed: %08b -> %08b", i, old, got)
				}
			}
		}
	}
}

func TestExtractCorruptedHeader(t *testing.T) {
	// Forge a header declaring 1000 payload bits in a 10x10 image that
	// holds only 68 more.
	img := uniformImage(10, 10, 128)
	header := IntToBits(1000, HeaderBits)
	for i, bit := range header {
		pos := i*imaging.Channels + 2
		img.Pix[pos] = (img.Pix[pos] &^ 1) | bit
	}

	codec := mustCodec(t, 1, models.ChannelBlue)
	if _, err := codec.Extract(img); !errors.Is(err, ErrCorruptedPayload) {
		t.Errorf("error = %v, want ErrCorruptedPayload", err)
	}
}

func TestExtractImageSmallerThanHeader(t *testing.T) {
	codec := mustCodec(t, 1, models.ChannelBlue)
	img := uniformImage(5, 5, 128) // 25 bits < 32-bit header
	if _, err := codec.Extract(img); !errors.Is(err, ErrCorruptedPayload) {
		t.Errorf("error = %v, want ErrCorruptedPayload", err)
	}
}

func TestEmbedPadsFinalGroup(t *testing.T) {
	// 48 header+payload bits at 3 bpp is exactly 16 pixels, but 1 byte of
	// payload means 40 bits: 14 pixels, with the last group padded.
	codec := mustCodec(t, 3, models.ChannelBlue)
	img := uniformImage(10, 10, 255)

	payload := []byte{0xC3}
	stats, err := codec.Embed(img, payload)
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if stats.PixelsModified != 14 { // ceil(40/3)
		t.Errorf("PixelsModified = %d, want 14", stats.PixelsModified)
	}

	got, err := codec.Extract(img)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("extracted %v, want %v", got, payload)
	}
}
