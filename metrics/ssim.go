package metrics

import (
	"math"

	"image-steganography-backend/imaging"
)

// SSIMCalculator computes a structural similarity index for two rasters of
// identical dimensions. 1.0 means identical images.
type SSIMCalculator interface {
	Calculate(cover, stego *imaging.RasterImage) float64
}

const (
	ssimWindowSize = 11
	ssimSigma      = 1.5
)

// selectSSIM prefers the windowed algorithm and falls back to the global
// formula when the image cannot hold a single window.
func selectSSIM(img *imaging.RasterImage) SSIMCalculator {
	if img.Width < ssimWindowSize || img.Height < ssimWindowSize {
		return GlobalSSIM{}
	}
	return NewWindowedSSIM()
}

// WindowedSSIM is the standard local structural similarity: an 11x11
// Gaussian-weighted comparison of luminance, contrast, and structure,
// computed per channel at every valid window position and averaged.
type WindowedSSIM struct {
	windowSize int
	kernel     []float64
}

// NewWindowedSSIM builds the calculator with the standard 11x11 window
// and sigma 1.5.
func NewWindowedSSIM() *WindowedSSIM {
	return &WindowedSSIM{
		windowSize: ssimWindowSize,
		kernel:     gaussianKernel(ssimWindowSize, ssimSigma),
	}
}

// Calculate returns the mean SSIM over all channels and window positions.
func (w *WindowedSSIM) Calculate(cover, stego *imaging.RasterImage) float64 {
	c1 := (0.01 * maxPixelValue) * (0.01 * maxPixelValue)
	c2 := (0.03 * maxPixelValue) * (0.03 * maxPixelValue)

	n := w.windowSize
	var sum float64
	var count int

	for ch := 0; ch < imaging.Channels; ch++ {
		for wy := 0; wy+n <= cover.Height; wy++ {
			for wx := 0; wx+n <= cover.Width; wx++ {
				var mx, my, mxx, myy, mxy float64
				k := 0
				for dy := 0; dy < n; dy++ {
					for dx := 0; dx < n; dx++ {
						weight := w.kernel[k]
						k++
						x := float64(cover.At(wx+dx, wy+dy, ch))
						y := float64(stego.At(wx+dx, wy+dy, ch))
						mx += weight * x
						my += weight * y
						mxx += weight * x * x
						myy += weight * y * y
						mxy += weight * x * y
					}
				}

				vx := mxx - mx*mx
				vy := myy - my*my
				cov := mxy - mx*my

				sum += ((2*mx*my + c1) * (2*cov + c2)) /
					((mx*mx + my*my + c1) * (vx + vy + c2))
				count++
			}
		}
	}

	if count == 0 {
		return GlobalSSIM{}.Calculate(cover, stego)
	}
	return sum / float64(count)
}

// gaussianKernel returns a normalized size x size Gaussian weight matrix
// flattened in row-major order.
func gaussianKernel(size int, sigma float64) []float64 {
	kernel := make([]float64, size*size)
	center := float64(size-1) / 2
	var total float64
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[y*size+x] = v
			total += v
		}
	}
	for i := range kernel {
		kernel[i] /= total
	}
	return kernel
}

// GlobalSSIM treats the whole image as a single window over normalized
// [0,1] pixel values. It is an approximation of the windowed algorithm,
// kept for images smaller than the window.
type GlobalSSIM struct{}

// Calculate applies the SSIM formula to global means, variances, and
// covariance with stability constants C1=0.0001 and C2=0.0009.
func (GlobalSSIM) Calculate(cover, stego *imaging.RasterImage) float64 {
	const (
		c1 = 0.0001
		c2 = 0.0009
	)

	total := len(cover.Pix)
	if total == 0 {
		return 1.0
	}

	var meanX, meanY float64
	for i := range cover.Pix {
		meanX += float64(cover.Pix[i]) / maxPixelValue
		meanY += float64(stego.Pix[i]) / maxPixelValue
	}
	meanX /= float64(total)
	meanY /= float64(total)

	var varX, varY, cov float64
	for i := range cover.Pix {
		dx := float64(cover.Pix[i])/maxPixelValue - meanX
		dy := float64(stego.Pix[i])/maxPixelValue - meanY
		varX += dx * dx
		varY += dy * dy
		cov += dx * dy
	}
	varX /= float64(total)
	varY /= float64(total)
	cov /= float64(total)

	return ((2*meanX*meanY + c1) * (2*cov + c2)) /
		((meanX*meanX + meanY*meanY + c1) * (varX + varY + c2))
}
