package scan

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Raster formats the stub detector can decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image extensions the scanner considers fetchable
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".ico":  true,
	".bmp":  true,
	".avif": true,
}

// Markup extensions inspected for image references
var markupExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".css":  true,
}

// Marker substrings that identify generated SVG/HTML stubs
var placeholderMarkers = []string{
	"placeholder",
	"placehold.it",
	"via.placeholder.com",
	"dummyimage",
}

// IsImageFile reports whether the path has a known image extension
func IsImageFile(p string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(p))]
}

// IsMarkupFile reports whether the path is HTML or CSS
func IsMarkupFile(p string) bool {
	return markupExtensions[strings.ToLower(filepath.Ext(p))]
}

// isPlaceholder reports whether an existing, non-empty image file looks like
// stub content rather than a real asset. Checks are ordered cheapest first:
// size threshold, marker text for SVG, then decode-based checks for raster
// formats the standard library understands.
func (s *Scanner) isPlaceholder(localPath string, size int64) bool {
	if size <= s.PlaceholderMaxBytes {
		return true
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	if ext == ".svg" {
		return svgLooksLikeStub(localPath, s.SolidColorMaxBytes)
	}

	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".gif" {
		return false
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		// Wrong bytes behind an image extension; treat as a stub so the
		// real asset gets fetched.
		return true
	}
	if cfg.Width <= s.MinPixelSize || cfg.Height <= s.MinPixelSize {
		return true
	}

	if size <= s.SolidColorMaxBytes {
		return isSolidColor(data)
	}
	return false
}

// svgLooksLikeStub checks small SVG files for generator markers
func svgLooksLikeStub(localPath string, maxBytes int64) bool {
	info, err := os.Stat(localPath)
	if err != nil || info.Size() > maxBytes {
		return false
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return false
	}

	lower := strings.ToLower(string(data))
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// isSolidColor decodes the image and samples a pixel grid; a single color
// across all samples means a generated fill, not a photo or graphic.
func isSolidColor(data []byte) bool {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return true
	}

	const samples = 8
	stepX := bounds.Dx() / samples
	stepY := bounds.Dy() / samples
	if stepX == 0 {
		stepX = 1
	}
	if stepY == 0 {
		stepY = 1
	}

	r0, g0, b0, a0 := img.At(bounds.Min.X, bounds.Min.Y).RGBA()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, a := img.At(x, y).RGBA()
			if r != r0 || g != g0 || b != b0 || a != a0 {
				return false
			}
		}
	}
	return true
}
