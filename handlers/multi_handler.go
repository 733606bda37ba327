package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"image-steganography-backend/crypto"
	"image-steganography-backend/imaging"
	"image-steganography-backend/models"
	"image-steganography-backend/stego"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultNumParts = 3

// EncodeMulti splits a secret into XOR shares and embeds each share in
// its own cover image. Every resulting image is required to decode; any
// subset reveals nothing about the secret.
func (h *StegoHandler) EncodeMulti(c *gin.Context) {
	var req models.MultiEncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	numParts := req.NumParts
	if numParts == 0 {
		numParts = defaultNumParts
	}
	if numParts < 2 || numParts > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Number of parts must be between 2 and 10"})
		return
	}
	if len(req.CoverImages) < numParts {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Need %d cover images (got %d)", numParts, len(req.CoverImages)),
		})
		return
	}

	parts, err := crypto.SplitSecret([]byte(req.SecretMessage), numParts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	codec, err := stego.NewLSBSteganography(multiPartConfig())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	stegoImages := make([]models.StegoPart, 0, numParts)
	for i, part := range parts {
		cover, err := decodeBase64Image(req.CoverImages[i])
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Invalid cover image %d: %v", i+1, err),
			})
			return
		}

		if _, err := codec.Embed(cover, part); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, stego.ErrCapacityExceeded) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{
				"success": false,
				"message": fmt.Sprintf("Failed to embed part %d: %v", i+1, err),
			})
			return
		}

		data, err := imaging.EncodePNG(cover)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": fmt.Sprintf("Failed to encode stego image %d: %v", i+1, err),
			})
			return
		}
		stegoImages = append(stegoImages, models.StegoPart{
			PartNumber: i + 1,
			StegoImage: base64.StdEncoding.EncodeToString(data),
		})
	}

	c.Header("X-Stego-Operation-ID", uuid.NewString())
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"stego_images": stegoImages,
		"total_parts":  numParts,
		"message":      fmt.Sprintf("Secret split into %d parts; all parts are needed to decode", numParts),
	})
}

// DecodeMulti extracts one share from every stego image and combines
// them back into the original secret.
func (h *StegoHandler) DecodeMulti(c *gin.Context) {
	var req models.MultiDecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}
	if len(req.StegoImages) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Need at least 2 stego images"})
		return
	}

	codec, err := stego.NewLSBSteganography(multiPartConfig())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	parts := make([][]byte, 0, len(req.StegoImages))
	for i, b64 := range req.StegoImages {
		img, err := decodeBase64Image(b64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": fmt.Sprintf("Invalid stego image %d: %v", i+1, err),
			})
			return
		}

		part, err := codec.Extract(img)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, stego.ErrCorruptedPayload) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{
				"success": false,
				"message": fmt.Sprintf("Failed to extract part %d: %v", i+1, err),
			})
			return
		}
		parts = append(parts, part)
	}

	secret, err := crypto.CombineSecrets(parts)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.Header("X-Stego-Operation-ID", uuid.NewString())
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"secret_message": string(secret),
		"parts_used":     len(parts),
	})
}

// multiPartConfig is the fixed codec config for share embedding: shares
// are random bytes, so the least intrusive depth is always enough.
func multiPartConfig() *models.StegoConfig {
	return &models.StegoConfig{BitsPerPixel: 1, Channel: models.ChannelBlue}
}

// decodeBase64Image parses a base64 image, tolerating a data URL prefix.
func decodeBase64Image(b64 string) (*imaging.RasterImage, error) {
	if idx := strings.Index(b64, ","); idx >= 0 && strings.HasPrefix(b64, "data:") {
		b64 = b64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return img, nil
}
