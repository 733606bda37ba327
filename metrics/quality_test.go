package metrics

import (
	"errors"
	"math"
	"strings"
	"testing"

	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
	"image-steganography-backend/stego"
)

func uniformImage(width, height int, value uint8) *imaging.RasterImage {
	img := imaging.NewRasterImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

func gradientImage(width, height int) *imaging.RasterImage {
	img := imaging.NewRasterImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, 0, uint8(x*255/width))
			img.Set(x, y, 1, uint8(y*255/height))
			img.Set(x, y, 2, uint8((x+y)*255/(width+height)))
		}
	}
	return img
}

func TestIdenticalImages(t *testing.T) {
	img := gradientImage(32, 32)
	report, err := NewEngine().CompareImages(img, img.Clone())
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}

	if report.MSE != 0 {
		t.Errorf("MSE = %f, want 0", report.MSE)
	}
	if !math.IsInf(report.PSNR, 1) {
		t.Errorf("PSNR = %f, want +Inf", report.PSNR)
	}
	if math.Abs(report.SSIM-1.0) > 1e-9 {
		t.Errorf("SSIM = %f, want 1.0", report.SSIM)
	}
	if report.QualityAssessment != "Excellent" || !report.Imperceptible {
		t.Errorf("assessment = %q/%v, want Excellent/true", report.QualityAssessment, report.Imperceptible)
	}
}

func TestPSNRFromKnownMSE(t *testing.T) {
	// Every stego channel value is exactly 2 away, so MSE is exactly 4.
	cover := uniformImage(16, 16, 128)
	stegoImg := uniformImage(16, 16, 130)

	mse, err := CalculateMSE(cover, stegoImg)
	if err != nil {
		t.Fatalf("CalculateMSE failed: %v", err)
	}
	if mse != 4.0 {
		t.Errorf("MSE = %f, want 4.0", mse)
	}

	want := 10 * math.Log10(65025.0/4.0)
	got := CalculatePSNR(mse)
	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("PSNR = %f, want %f", got, want)
	}
}

func TestPSNRInfiniteOnlyForZeroMSE(t *testing.T) {
	if !math.IsInf(CalculatePSNR(0), 1) {
		t.Error("PSNR(0) should be +Inf")
	}
	if math.IsInf(CalculatePSNR(1e-9), 1) {
		t.Error("PSNR of nonzero MSE should be finite")
	}
}

func TestDimensionMismatch(t *testing.T) {
	_, err := NewEngine().CompareImages(uniformImage(10, 10, 0), uniformImage(10, 11, 0))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestDistortionMonotonicity(t *testing.T) {
	// A fixed all-ones payload on a uniform cover forces strictly more
	// distortion as bit depth grows: errors of 1, then 3, then 7 per
	// modified pixel.
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = 0xFF
	}

	var psnrs, ssims []float64
	for bpp := 1; bpp <= 3; bpp++ {
		codec, err := stego.NewLSBSteganography(&models.StegoConfig{
			BitsPerPixel: bpp,
			Channel:      models.ChannelBlue,
		})
		if err != nil {
			t.Fatalf("NewLSBSteganography failed: %v", err)
		}

		cover := uniformImage(64, 64, 128)
		stegoImg := cover.Clone()
		if _, err := codec.Embed(stegoImg, payload); err != nil {
			t.Fatalf("Embed at %d bpp failed: %v", bpp, err)
		}

		report, err := NewEngine().CompareImages(cover, stegoImg)
		if err != nil {
			t.Fatalf("CompareImages failed: %v", err)
		}
		psnrs = append(psnrs, report.PSNR)
		ssims = append(ssims, report.SSIM)
	}

	const tolerance = 1e-9
	for i := 1; i < len(psnrs); i++ {
		if psnrs[i] > psnrs[i-1]+tolerance {
			t.Errorf("PSNR increased from %f to %f at %d bpp", psnrs[i-1], psnrs[i], i+1)
		}
		if ssims[i] > ssims[i-1]+tolerance {
			t.Errorf("SSIM increased from %f to %f at %d bpp", ssims[i-1], ssims[i], i+1)
		}
	}
}

func TestGlobalSSIMApproximatesWindowed(t *testing.T) {
	cover := gradientImage(32, 32)
	stegoImg := cover.Clone()
	for i := 0; i < len(stegoImg.Pix); i += 7 {
		stegoImg.Pix[i] ^= 1
	}

	windowed := NewWindowedSSIM().Calculate(cover, stegoImg)
	global := GlobalSSIM{}.Calculate(cover, stegoImg)

	// The global formula is an approximation; both must agree the
	// distortion is tiny, not match exactly.
	if windowed < 0.99 {
		t.Errorf("windowed SSIM = %f, want near 1 for LSB-level noise", windowed)
	}
	if global < 0.99 {
		t.Errorf("global SSIM = %f, want near 1 for LSB-level noise", global)
	}
	if math.Abs(windowed-global) > 0.05 {
		t.Errorf("windowed %f and global %f diverge beyond tolerance", windowed, global)
	}
}

func TestSmallImageFallsBackToGlobalSSIM(t *testing.T) {
	// 8x8 cannot hold an 11x11 window; the engine must still produce a
	// sane value through the global formula.
	cover := gradientImage(8, 8)
	report, err := NewEngine().CompareImages(cover, cover.Clone())
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if math.Abs(report.SSIM-1.0) > 1e-9 {
		t.Errorf("SSIM = %f, want 1.0", report.SSIM)
	}
}

func TestPoorQualityRecommendations(t *testing.T) {
	cover := gradientImage(32, 32)
	inverted := cover.Clone()
	for i := range inverted.Pix {
		inverted.Pix[i] = 255 - inverted.Pix[i]
	}

	report, err := NewEngine().CompareImages(cover, inverted)
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if report.QualityAssessment != "Poor" || report.Imperceptible {
		t.Errorf("assessment = %q/%v, want Poor/false", report.QualityAssessment, report.Imperceptible)
	}

	wantSubstrings := []string{"fewer bits per pixel", "different cover image"}
	for _, want := range wantSubstrings {
		found := false
		for _, rec := range report.Recommendations {
			if strings.Contains(rec, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("recommendations %v missing %q", report.Recommendations, want)
		}
	}
}

func TestAcceptableQualityFallbackRecommendation(t *testing.T) {
	// A mild uniform offset: MSE 4, PSNR ~42 dB, SSIM very close to 1.
	cover := uniformImage(32, 32, 128)
	stegoImg := uniformImage(32, 32, 130)

	report, err := NewEngine().CompareImages(cover, stegoImg)
	if err != nil {
		t.Fatalf("CompareImages failed: %v", err)
	}
	if len(report.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
}
