// Package metrics is made to evaluate how much an embedding altered an image
package metrics

import (
	"errors"
	"fmt"
	"math"

	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
)

// ErrDimensionMismatch reports cover and stego images of different sizes.
var ErrDimensionMismatch = errors.New("dimension mismatch")

const maxPixelValue = 255.0

// Engine computes fidelity metrics between a cover and a stego image.
// The SSIM strategy is pluggable; the zero value picks the windowed
// algorithm and falls back to the global formula for images smaller than
// the window.
type Engine struct {
	ssim SSIMCalculator
}

// NewEngine returns an engine with automatic SSIM strategy selection.
func NewEngine() *Engine {
	return &Engine{}
}

// NewEngineWithSSIM returns an engine pinned to the given SSIM strategy.
func NewEngineWithSSIM(ssim SSIMCalculator) *Engine {
	return &Engine{ssim: ssim}
}

// CalculateMSE returns the mean squared error over all pixels and channels.
func CalculateMSE(cover, stego *imaging.RasterImage) (float64, error) {
	if cover.Width != stego.Width || cover.Height != stego.Height {
		return 0, fmt.Errorf("%w: cover is %dx%d, stego is %dx%d",
			ErrDimensionMismatch, cover.Width, cover.Height, stego.Width, stego.Height)
	}
	if len(cover.Pix) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range cover.Pix {
		diff := float64(cover.Pix[i]) - float64(stego.Pix[i])
		sum += diff * diff
	}
	return sum / float64(len(cover.Pix)), nil
}

// CalculatePSNR converts an MSE into peak signal-to-noise ratio in dB.
// Identical images (MSE 0) yield +Inf.
func CalculatePSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(maxPixelValue*maxPixelValue/mse)
}

// CompareImages computes MSE, PSNR, and SSIM for the pair and returns the
// full report with interpretation bands and recommendations.
func (e *Engine) CompareImages(cover, stego *imaging.RasterImage) (models.FidelityReport, error) {
	mse, err := CalculateMSE(cover, stego)
	if err != nil {
		return models.FidelityReport{}, err
	}
	psnr := CalculatePSNR(mse)

	ssim := e.ssim
	if ssim == nil {
		ssim = selectSSIM(cover)
	}
	ssimValue := ssim.Calculate(cover, stego)

	report := models.FidelityReport{
		MSE:                mse,
		PSNR:               psnr,
		SSIM:               ssimValue,
		MSEInterpretation:  interpretMSE(mse),
		PSNRInterpretation: interpretPSNR(psnr),
		SSIMInterpretation: interpretSSIM(ssimValue),
		Recommendations:    recommendations(mse, psnr, ssimValue),
	}
	report.QualityAssessment, report.Imperceptible = assessOverall(psnr, ssimValue)
	return report, nil
}

func interpretMSE(mse float64) string {
	switch {
	case mse == 0:
		return "Perfect (images identical)"
	case mse < 1:
		return "Excellent (imperceptible differences)"
	case mse < 10:
		return "Good (very minor differences)"
	case mse < 100:
		return "Acceptable (minor differences)"
	default:
		return "Poor (visible differences)"
	}
}

func interpretPSNR(psnr float64) string {
	switch {
	case math.IsInf(psnr, 1):
		return "Perfect (images identical)"
	case psnr > 50:
		return "Excellent (imperceptible)"
	case psnr > 40:
		return "Very good (nearly imperceptible)"
	case psnr > 30:
		return "Acceptable"
	default:
		return "Poor (visible distortion)"
	}
}

func interpretSSIM(ssim float64) string {
	switch {
	case ssim >= 0.999:
		return "Excellent (imperceptible)"
	case ssim >= 0.99:
		return "Very good (nearly imperceptible)"
	case ssim >= 0.95:
		return "Good"
	case ssim >= 0.90:
		return "Acceptable"
	default:
		return "Poor"
	}
}

func assessOverall(psnr, ssim float64) (string, bool) {
	switch {
	case psnr > 50 && ssim >= 0.99:
		return "Excellent", true
	case psnr > 40 && ssim >= 0.95:
		return "Very Good", true
	case psnr > 30 && ssim >= 0.90:
		return "Good", false
	default:
		return "Poor", false
	}
}

// recommendations applies every matching rule; the rules are independent
// and order does not affect which of them fire.
func recommendations(mse, psnr, ssim float64) []string {
	var recs []string

	if psnr < 40 {
		recs = append(recs, "Consider using fewer bits per pixel (e.g., 1 instead of 2 or 3)")
	}
	if ssim < 0.95 {
		recs = append(recs, "Image quality is reduced - steganography may be detectable")
	}
	if mse > 10 {
		recs = append(recs, "High MSE indicates significant changes - use a different cover image")
	}
	if psnr > 50 && ssim > 0.99 {
		recs = append(recs, "Excellent quality! Changes are imperceptible.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Quality is acceptable for steganography use")
	}
	return recs
}
