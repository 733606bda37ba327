// Package detect implements steganalysis heuristics for images and text.
//
// The image path estimates how likely hidden LSB data is from the blue
// channel's bit plane and value histogram; the text path counts
// zero-width Unicode characters. Detection is a heuristic, not a proof:
// thresholds were calibrated against a reference corpus and both false
// positives and false negatives occur.
package detect

import (
	"fmt"
	"math"
	"strings"

	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
)

// Zero-width code points used by text steganography tools.
var zeroWidthChars = []string{"\u200B", "\u200C", "\u200D", "\uFEFF"}

// Probability is capped below certainty: statistics alone can never
// prove presence of hidden data.
const maxProbability = 95

// AnalyzeImage scans a raster for signs of LSB steganography. It always
// returns a report, never an error.
func AnalyzeImage(img *imaging.RasterImage) models.DetectionReport {
	lsb := analyzeLSBRandomness(img)
	stats := statisticalTests(img)

	probability := 0.0
	indicators := []string{}

	// Uniform LSB distribution (ones close to 50%) is typical of
	// embedded data.
	if lsb.OnesRatio >= 0.48 && lsb.OnesRatio <= 0.52 {
		probability += 25
		indicators = append(indicators, "LSB distribution is suspiciously uniform (typical of stego)")
	}

	if lsb.RandomnessScore > 0.9 && lsb.OnesRatio >= 0.45 && lsb.OnesRatio <= 0.55 {
		probability += 20
		indicators = append(indicators, "LSB shows characteristics of hidden data")
	}

	// The two chi-square branches are mutually exclusive by
	// construction; both thresholds are part of the calibration.
	if stats.ChiSquare < 0.1 {
		probability += 15
		indicators = append(indicators, "Statistical anomaly in pixel value pairs")
	} else if stats.ChiSquare > 0.7 {
		probability += 20
		indicators = append(indicators, "Chi-square test suggests possible hidden data")
	}

	if stats.Entropy > 7.8 {
		probability += 15
		indicators = append(indicators, "Unusually high entropy in pixel distribution")
	}

	if lsb.BitPlaneAnomaly {
		probability += 20
		indicators = append(indicators, "Anomalies detected in LSB bit plane patterns")
	}

	if lsb.SequentialAnomaly {
		probability += 15
		indicators = append(indicators, "Sequential patterns suggest embedded data")
	}

	report := models.DetectionReport{
		HasStegoProbability: math.Min(probability, maxProbability),
		Indicators:          indicators,
		LSBAnalysis:         lsb,
		StatisticalAnalysis: stats,
		Verdict:             verdictFor(probability),
	}
	return report
}

func verdictFor(probability float64) string {
	switch {
	case probability < 20:
		return models.VerdictClean
	case probability < 45:
		return models.VerdictUncertain
	case probability < 65:
		return models.VerdictSuspicious
	default:
		return models.VerdictLikelyStego
	}
}

// analyzeLSBRandomness studies the blue channel's least significant bits.
// Natural images have structured LSB planes from smooth color
// transitions; embedding makes them look random.
func analyzeLSBRandomness(img *imaging.RasterImage) *models.LSBAnalysis {
	total := img.Width * img.Height
	if total == 0 {
		return &models.LSBAnalysis{AvgRunLength: 1}
	}

	flat := make([]uint8, total)
	ones := 0
	for i := 0; i < total; i++ {
		bit := img.Pix[i*imaging.Channels+2] & 1
		flat[i] = bit
		ones += int(bit)
	}

	ratio := float64(ones) / float64(total)
	randomness := 1.0 - math.Abs(ratio-0.5)*2

	transitions := 0
	for i := 1; i < total; i++ {
		if flat[i] != flat[i-1] {
			transitions++
		}
	}
	expected := float64(total-1) * 0.5
	patternScore := 0.0
	if expected > 0 {
		patternScore = math.Abs(float64(transitions)-expected) / expected
	}

	// Run lengths of identical consecutive bits; embedding shortens runs.
	runCount := 0
	currentRun := 1
	sumRuns := 0
	for i := 1; i < total; i++ {
		if flat[i] == flat[i-1] {
			currentRun++
		} else {
			sumRuns += currentRun
			runCount++
			currentRun = 1
		}
	}
	sumRuns += currentRun
	runCount++
	avgRunLength := float64(sumRuns) / float64(runCount)

	return &models.LSBAnalysis{
		OnesRatio:         ratio,
		RandomnessScore:   randomness,
		PatternScore:      patternScore,
		BitPlaneAnomaly:   patternScore > 0.2,
		AvgRunLength:      avgRunLength,
		SequentialAnomaly: avgRunLength < 1.8,
	}
}

// statisticalTests builds a 256-bin histogram of the blue channel and
// derives Shannon entropy plus a chi-square-like deviation from the
// uniform expectation.
func statisticalTests(img *imaging.RasterImage) *models.StatisticalAnalysis {
	total := img.Width * img.Height
	if total == 0 {
		return &models.StatisticalAnalysis{}
	}

	var hist [256]int
	for i := 0; i < total; i++ {
		hist[img.Pix[i*imaging.Channels+2]]++
	}

	n := float64(total)
	expected := n / 256

	entropy := 0.0
	rawChi := 0.0
	unique := 0
	for _, count := range hist {
		if count == 0 {
			continue
		}
		unique++
		p := float64(count) / n
		entropy -= p * math.Log2(p)
		diff := float64(count) - expected
		rawChi += diff * diff / expected
	}
	chiNormalized := math.Min(rawChi/expected/100, 1.0)

	return &models.StatisticalAnalysis{
		Entropy:      entropy,
		ChiSquare:    chiNormalized,
		UniqueValues: unique,
	}
}

// AnalyzeText scans a text for the zero-width code points used by text
// steganography. Any occurrence is a strong indicator.
func AnalyzeText(text string) models.DetectionReport {
	count := 0
	for _, zwc := range zeroWidthChars {
		count += strings.Count(text, zwc)
	}

	report := models.DetectionReport{
		Indicators:     []string{},
		ZeroWidthChars: count,
		Verdict:        models.VerdictClean,
	}
	if count > 0 {
		report.HasStegoProbability = math.Min(float64(count)*10, maxProbability)
		report.Indicators = append(report.Indicators, fmt.Sprintf("Found %d zero-width characters", count))
		report.Verdict = models.VerdictLikelyStego
	}
	return report
}
