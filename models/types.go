// Package models contain needed models
package models

// Channel identifies which color channel of a pixel carries payload bits.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

// String returns the display name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	}
	return "Unknown"
}

// Detection verdicts, ordered from least to most suspicious.
const (
	VerdictClean       = "clean"
	VerdictUncertain   = "uncertain"
	VerdictSuspicious  = "suspicious"
	VerdictLikelyStego = "likely_stego"
)

// StegoConfig represents configuration for LSB steganography operations
type StegoConfig struct {
	BitsPerPixel  int
	Channel       Channel
	Key           string
	UseEncryption bool
}

// CapacityReport describes how much payload an image can hold at a given depth.
type CapacityReport struct {
	ImageDimensions    string `json:"image_dimensions"`
	TotalPixels        int    `json:"total_pixels"`
	BitsPerPixel       int    `json:"bits_per_pixel"`
	TotalBitsAvailable int    `json:"total_bits_available"`
	HeaderBits         int    `json:"header_bits"`
	UsableBits         int    `json:"usable_bits"`
	MaxBytes           int    `json:"max_bytes"`
}

// EmbedStats summarizes a completed embedding.
type EmbedStats struct {
	PayloadBytes        int     `json:"payload_bytes"`
	PayloadBits         int     `json:"payload_bits"`
	HeaderBits          int     `json:"header_bits"`
	TotalBitsEncoded    int     `json:"total_bits_encoded"`
	BitsPerPixel        int     `json:"bits_per_pixel"`
	ChannelUsed         string  `json:"channel_used"`
	PixelsModified      int     `json:"pixels_modified"`
	CapacityUsedPercent float64 `json:"capacity_used_percent"`
}

// FidelityReport holds the quality metrics comparing a cover and a stego image.
// PSNR is +Inf when the images are identical, so callers serializing the
// report render that field themselves.
type FidelityReport struct {
	MSE                float64  `json:"mse"`
	PSNR               float64  `json:"-"`
	SSIM               float64  `json:"ssim"`
	QualityAssessment  string   `json:"quality_assessment"`
	Imperceptible      bool     `json:"imperceptible"`
	MSEInterpretation  string   `json:"mse_interpretation"`
	PSNRInterpretation string   `json:"psnr_interpretation"`
	SSIMInterpretation string   `json:"ssim_interpretation"`
	Recommendations    []string `json:"recommendations"`
}

// LSBAnalysis holds bit-plane statistics gathered by the detector.
type LSBAnalysis struct {
	OnesRatio         float64 `json:"ones_ratio"`
	RandomnessScore   float64 `json:"randomness_score"`
	PatternScore      float64 `json:"pattern_score"`
	BitPlaneAnomaly   bool    `json:"bit_plane_anomaly"`
	AvgRunLength      float64 `json:"avg_run_length"`
	SequentialAnomaly bool    `json:"sequential_anomaly"`
}

// StatisticalAnalysis holds histogram-level statistics gathered by the detector.
type StatisticalAnalysis struct {
	Entropy      float64 `json:"entropy"`
	ChiSquare    float64 `json:"chi_square"`
	UniqueValues int     `json:"unique_values"`
}

// DetectionReport is the outcome of steganalysis on an image or a text.
type DetectionReport struct {
	HasStegoProbability float64              `json:"has_stego_probability"`
	Indicators          []string             `json:"indicators"`
	LSBAnalysis         *LSBAnalysis         `json:"lsb_analysis,omitempty"`
	StatisticalAnalysis *StatisticalAnalysis `json:"statistical_analysis,omitempty"`
	ZeroWidthChars      int                  `json:"zero_width_chars"`
	Verdict             string               `json:"verdict"`
}

// EncodeResponse represents the JSON response for a failed embedding
// (successful embeddings stream the stego image directly).
type EncodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DecodeResponse represents the response after extraction
type DecodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Payload string `json:"payload,omitempty"`
}

// MultiEncodeRequest carries a secret-splitting embed request. Cover
// images are base64 encoded, optionally with a data URL prefix.
type MultiEncodeRequest struct {
	SecretMessage string   `json:"secret_message" binding:"required"`
	NumParts      int      `json:"num_parts"`
	CoverImages   []string `json:"cover_images" binding:"required"`
}

// StegoPart is one share of a split secret, embedded in its own image.
type StegoPart struct {
	PartNumber int    `json:"part_number"`
	StegoImage string `json:"stego_image"`
}

// MultiDecodeRequest carries the stego images holding all shares of a
// split secret.
type MultiDecodeRequest struct {
	StegoImages []string `json:"stego_images" binding:"required"`
}

// DetectTextRequest carries a text to scan for zero-width characters.
type DetectTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// EncodeTextRequest carries a zero-width text embedding request.
type EncodeTextRequest struct {
	CoverText       string `json:"cover_text" binding:"required"`
	Message         string `json:"message" binding:"required"`
	EncodingBits    int    `json:"encoding_bits" binding:"required,min=1,max=2"`
	InsertionMethod string `json:"insertion_method"`
}

// DecodeTextRequest carries a zero-width text extraction request.
type DecodeTextRequest struct {
	StegoText    string `json:"stego_text" binding:"required"`
	EncodingBits int    `json:"encoding_bits" binding:"required,min=1,max=2"`
}
