package main

import (
	"log"
	"os"

	"image-steganography-backend/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{
		"X-Stego-Operation-ID", "X-Stego-PSNR", "X-Stego-SSIM",
		"X-Stego-Capacity-Used", "Content-Disposition",
	}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		st := api.Group("/stego")
		{
			st.POST("/encode", stegoHandler.EncodeImage)
			st.POST("/decode", stegoHandler.DecodeImage)
			st.POST("/capacity", stegoHandler.Capacity)
			st.POST("/encode-text", stegoHandler.EncodeText)
			st.POST("/decode-text", stegoHandler.DecodeText)
			st.POST("/encode-multi", stegoHandler.EncodeMulti)
			st.POST("/decode-multi", stegoHandler.DecodeMulti)
		}

		analyze := api.Group("/analyze")
		{
			analyze.POST("/quality", stegoHandler.AnalyzeQuality)
			analyze.POST("/detect", stegoHandler.DetectImage)
			analyze.POST("/detect-text", stegoHandler.DetectText)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/encode       - Embed message into image (returns stego PNG)")
	log.Printf("  POST /api/v1/stego/decode       - Extract message from stego image")
	log.Printf("  POST /api/v1/stego/capacity     - Report image payload capacity")
	log.Printf("  POST /api/v1/stego/encode-text  - Hide message in text (zero-width characters)")
	log.Printf("  POST /api/v1/stego/decode-text  - Extract message from stego text")
	log.Printf("  POST /api/v1/stego/encode-multi - Split secret across multiple images")
	log.Printf("  POST /api/v1/stego/decode-multi - Reconstruct secret from all parts")
	log.Printf("  POST /api/v1/analyze/quality    - Compare original and stego image quality")
	log.Printf("  POST /api/v1/analyze/detect     - Steganalysis of an image")
	log.Printf("  POST /api/v1/analyze/detect-text - Steganalysis of a text")
	log.Printf("  GET  /api/v1/health             - Health check")
	log.Printf("")
	log.Printf("Features:")
	log.Printf("  • LSB steganography on PNG/BMP/TIFF/JPEG covers (output always lossless PNG)")
	log.Printf("  • Zero-width character text steganography")
	log.Printf("  • Optional Vigenère payload encryption")
	log.Printf("  • Secret splitting across multiple cover images")
	log.Printf("  • MSE/PSNR/SSIM quality assessment")
	log.Printf("  • Statistical steganalysis detector")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
