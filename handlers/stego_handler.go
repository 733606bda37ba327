// Package handlers is made to handle requests
package handlers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"image-steganography-backend/crypto"
	"image-steganography-backend/detect"
	"image-steganography-backend/imaging"
	"image-steganography-backend/metrics"
	"image-steganography-backend/models"
	"image-steganography-backend/stego"
	"image-steganography-backend/textstego"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20 // 32MB limit

type StegoHandler struct {
	metricsEngine *metrics.Engine
}

func NewStegoHandler() *StegoHandler {
	return &StegoHandler{
		metricsEngine: metrics.NewEngine(),
	}
}

func (h *StegoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Image steganography API is running",
		"version": "1.0.0",
	})
}

// EncodeImage embeds a message into an uploaded cover image and streams
// the stego image back as a lossless PNG.
func (h *StegoHandler) EncodeImage(c *gin.Context) {
	config, ok := parseStegoConfig(c)
	if !ok {
		return
	}

	message := c.PostForm("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "Message is required",
		})
		return
	}

	cover, coverHeader, ok := readImageFile(c, "image_file")
	if !ok {
		return
	}

	payload := []byte(message)
	if config.UseEncryption {
		payload = crypto.NewExtendedVigenere(config.Key).Encrypt(payload)
	}

	codec, err := stego.NewLSBSteganography(config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	stegoImg := cover.Clone()
	stats, err := codec.Embed(stegoImg, payload)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, stego.ErrCapacityExceeded) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to embed message: %v", err),
		})
		return
	}

	report, err := h.metricsEngine.CompareImages(cover, stegoImg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to compute quality metrics: %v", err),
		})
		return
	}

	data, err := imaging.EncodePNG(stegoImg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to encode stego image: %v", err),
		})
		return
	}

	baseFilename := strings.TrimSuffix(coverHeader.Filename, filepath.Ext(coverHeader.Filename))
	outputFilename := fmt.Sprintf("%s_stego.png", baseFilename)

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputFilename))
	c.Header("Content-Length", fmt.Sprintf("%d", len(data)))

	c.Header("X-Stego-Operation-ID", uuid.NewString())
	c.Header("X-Stego-Method", "Image LSB")
	c.Header("X-Stego-Channel", stats.ChannelUsed)
	c.Header("X-Stego-Pixels-Modified", fmt.Sprintf("%d", stats.PixelsModified))
	c.Header("X-Stego-Capacity-Used", fmt.Sprintf("%.2f%%", stats.CapacityUsedPercent))
	c.Header("X-Stego-PSNR", formatPSNR(report.PSNR))
	c.Header("X-Stego-SSIM", fmt.Sprintf("%.4f", report.SSIM))

	c.Data(http.StatusOK, "image/png", data)
}

// DecodeImage extracts a hidden message from an uploaded stego image.
func (h *StegoHandler) DecodeImage(c *gin.Context) {
	config, ok := parseStegoConfig(c)
	if !ok {
		return
	}

	stegoImg, _, ok := readImageFile(c, "stego_file")
	if !ok {
		return
	}

	codec, err := stego.NewLSBSteganography(config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.DecodeResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	payload, err := codec.Extract(stegoImg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, stego.ErrCorruptedPayload) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, models.DecodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to extract message: %v", err),
		})
		return
	}

	if config.UseEncryption {
		payload = crypto.NewExtendedVigenere(config.Key).Decrypt(payload)
	}

	c.Header("X-Stego-Operation-ID", uuid.NewString())
	c.JSON(http.StatusOK, models.DecodeResponse{
		Success: true,
		Message: "Message extracted successfully",
		Payload: string(payload),
	})
}

// Capacity reports how many bytes the uploaded image can hold.
func (h *StegoHandler) Capacity(c *gin.Context) {
	bitsPerPixel, ok := parseBitsPerPixel(c)
	if !ok {
		return
	}

	img, _, ok := readImageFile(c, "image_file")
	if !ok {
		return
	}

	report, err := stego.ComputeCapacity(img.Width, img.Height, bitsPerPixel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "capacity": report})
}

// AnalyzeQuality compares an original and a stego image and returns the
// fidelity metrics report.
func (h *StegoHandler) AnalyzeQuality(c *gin.Context) {
	original, _, ok := readImageFile(c, "original_file")
	if !ok {
		return
	}
	stegoImg, _, ok := readImageFile(c, "stego_file")
	if !ok {
		return
	}

	report, err := h.metricsEngine.CompareImages(original, stegoImg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, metrics.ErrDimensionMismatch) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "message": fmt.Sprintf("Failed to compare images: %v", err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"mse":                 report.MSE,
		"psnr":                psnrValue(report.PSNR),
		"ssim":                report.SSIM,
		"quality_assessment":  report.QualityAssessment,
		"imperceptible":       report.Imperceptible,
		"mse_interpretation":  report.MSEInterpretation,
		"psnr_interpretation": report.PSNRInterpretation,
		"ssim_interpretation": report.SSIMInterpretation,
		"recommendations":     report.Recommendations,
	})
}

// DetectImage runs the steganalysis heuristics over an uploaded image.
func (h *StegoHandler) DetectImage(c *gin.Context) {
	img, _, ok := readImageFile(c, "image_file")
	if !ok {
		return
	}

	report := detect.AnalyzeImage(img)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": report})
}

// DetectText scans a text for zero-width characters.
func (h *StegoHandler) DetectText(c *gin.Context) {
	var req models.DetectTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	report := detect.AnalyzeText(req.Text)
	c.JSON(http.StatusOK, gin.H{"success": true, "analysis": report})
}

// EncodeText hides a message inside visible text using zero-width characters.
func (h *StegoHandler) EncodeText(c *gin.Context) {
	var req models.EncodeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	stegoText, err := textstego.EncodeMessage(req.CoverText, []byte(req.Message), req.EncodingBits, req.InsertionMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stego_text": stegoText})
}

// DecodeText extracts a hidden message from zero-width stego text.
func (h *StegoHandler) DecodeText(c *gin.Context) {
	var req models.DecodeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	payload, err := textstego.DecodeMessage(req.StegoText, req.EncodingBits)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, stego.ErrCorruptedPayload) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": string(payload)})
}

// parseStegoConfig reads the common embedding form parameters. It writes
// the error response itself and reports ok=false when the request is bad.
func parseStegoConfig(c *gin.Context) (*models.StegoConfig, bool) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to parse form: %v", err),
		})
		return nil, false
	}

	bitsPerPixel, ok := parseBitsPerPixel(c)
	if !ok {
		return nil, false
	}

	channel := int(models.ChannelBlue)
	if s := c.PostForm("channel"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > 2 {
			c.JSON(http.StatusBadRequest, models.EncodeResponse{
				Success: false,
				Message: "Channel must be 0 (Red), 1 (Green), or 2 (Blue)",
			})
			return nil, false
		}
		channel = v
	}

	key := c.PostForm("key")
	useEncryption := c.PostForm("use_encryption") == "true"
	if useEncryption {
		if err := crypto.ValidateKey(key); err != nil {
			c.JSON(http.StatusBadRequest, models.EncodeResponse{
				Success: false,
				Message: fmt.Sprintf("Invalid key: %v", err),
			})
			return nil, false
		}
	}

	return &models.StegoConfig{
		BitsPerPixel:  bitsPerPixel,
		Channel:       models.Channel(channel),
		Key:           key,
		UseEncryption: useEncryption,
	}, true
}

func parseBitsPerPixel(c *gin.Context) (int, bool) {
	s := c.PostForm("bits_per_pixel")
	if s == "" {
		return 1, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 3 {
		c.JSON(http.StatusBadRequest, models.EncodeResponse{
			Success: false,
			Message: "Bits per pixel must be between 1 and 3",
		})
		return 0, false
	}
	return v, true
}

// readImageFile reads and decodes an uploaded image form file.
func readImageFile(c *gin.Context, field string) (*imaging.RasterImage, *multipart.FileHeader, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Image file %q is required", field),
		})
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": fmt.Sprintf("Failed to read image file: %v", err),
		})
		return nil, nil, false
	}

	img, _, err := imaging.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Invalid image file: %v. Supported formats: PNG, BMP, TIFF, JPEG", err),
		})
		return nil, nil, false
	}
	return img, header, true
}

func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "Inf"
	}
	return fmt.Sprintf("%.2f", psnr)
}

// psnrValue renders PSNR for JSON, where +Inf has no representation.
func psnrValue(psnr float64) any {
	if math.IsInf(psnr, 1) {
		return "Inf"
	}
	return psnr
}
