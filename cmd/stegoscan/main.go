// stegoscan runs the steganalysis detector over image files or text from
// the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"image-steganography-backend/detect"
	"image-steganography-backend/imaging"
	"image-steganography-backend/models"

	"github.com/fatih/color"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	alertColor   = color.New(color.FgRed, color.Bold).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

func printAlert(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", alertColor("[!!!]"), fmt.Sprintf(format, args...))
}

func main() {
	var (
		filePath = flag.String("file", "", "Path to a single image file to scan")
		dirPath  = flag.String("dir", "", "Path to a directory of images to scan")
		textPath = flag.String("textfile", "", "Path to a text file to scan for zero-width characters")
		verbose  = flag.Bool("verbose", false, "Show full statistics for every file")
	)
	flag.Parse()

	if *filePath == "" && *dirPath == "" && *textPath == "" {
		fmt.Println("Usage:")
		fmt.Println("  stegoscan -file <image>")
		fmt.Println("  stegoscan -dir <directory>")
		fmt.Println("  stegoscan -textfile <textfile>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	suspicious := 0

	if *textPath != "" {
		data, err := os.ReadFile(*textPath)
		if err != nil {
			printError("Failed to read %s: %v", *textPath, err)
			os.Exit(1)
		}
		report := detect.AnalyzeText(string(data))
		printReport(*textPath, report, *verbose)
		if report.Verdict == models.VerdictLikelyStego {
			suspicious++
		}
	}

	if *filePath != "" {
		if scanImage(*filePath, *verbose) {
			suspicious++
		}
	}

	if *dirPath != "" {
		entries, err := os.ReadDir(*dirPath)
		if err != nil {
			printError("Failed to read directory %s: %v", *dirPath, err)
			os.Exit(1)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isImageFile(entry.Name()) {
				continue
			}
			if scanImage(filepath.Join(*dirPath, entry.Name()), *verbose) {
				suspicious++
			}
		}
	}

	if suspicious > 0 {
		printAlert("%d file(s) likely contain hidden data", suspicious)
		os.Exit(2)
	}
	printSuccess("No likely steganography found")
}

// scanImage analyzes one image and reports whether it is likely stego.
func scanImage(path string, verbose bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		printError("Failed to read %s: %v", path, err)
		return false
	}

	img, format, err := imaging.Decode(data)
	if err != nil {
		printError("Failed to decode %s: %v", path, err)
		return false
	}

	printInfo("Scanning %s (%s, %dx%d)", path, format, img.Width, img.Height)
	report := detect.AnalyzeImage(img)
	printReport(path, report, verbose)
	return report.Verdict == models.VerdictLikelyStego
}

func printReport(path string, report models.DetectionReport, verbose bool) {
	switch report.Verdict {
	case models.VerdictClean:
		printSuccess("%s: clean (probability %.0f%%)", path, report.HasStegoProbability)
	case models.VerdictUncertain:
		printInfo("%s: uncertain (probability %.0f%%)", path, report.HasStegoProbability)
	case models.VerdictSuspicious:
		printWarning("%s: suspicious (probability %.0f%%)", path, report.HasStegoProbability)
	case models.VerdictLikelyStego:
		printAlert("%s: likely stego (probability %.0f%%)", path, report.HasStegoProbability)
	}

	for _, indicator := range report.Indicators {
		printWarning("  %s", indicator)
	}

	if verbose && report.LSBAnalysis != nil {
		lsb := report.LSBAnalysis
		stats := report.StatisticalAnalysis
		printInfo("  ones ratio=%.4f randomness=%.4f pattern=%.4f avg run=%.2f",
			lsb.OnesRatio, lsb.RandomnessScore, lsb.PatternScore, lsb.AvgRunLength)
		printInfo("  entropy=%.4f chi-square=%.4f unique values=%d",
			stats.Entropy, stats.ChiSquare, stats.UniqueValues)
	}
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg":
		return true
	}
	return false
}
