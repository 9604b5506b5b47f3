package scan

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG encodes a generated image to disk and returns its path
func writePNG(t *testing.T, dir, name string, width, height int, at func(x, y int) color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, at(x, y))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write PNG: %v", err)
	}
	return p
}

// noisy produces a poorly compressible pixel pattern so generated test
// images stay above the size threshold
func noisy(x, y int) color.Color {
	return color.RGBA{
		R: uint8((x*31 + y*17) % 251),
		G: uint8((x * y) % 241),
		B: uint8((x + y*13) % 239),
		A: 255,
	}
}

func solidGray(x, y int) color.Color {
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"img/hero.jpg", true},
		{"img/hero.JPG", true},
		{"assets/logo.svg", true},
		{"favicon.ico", true},
		{"img/photo.webp", true},
		{"index.html", false},
		{"css/style.css", false},
		{"js/app.js", false},
		{"README", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if IsImageFile(tt.path) != tt.expected {
				t.Errorf("IsImageFile(%q) = %v, expected %v",
					tt.path, !tt.expected, tt.expected)
			}
		})
	}
}

func TestIsMarkupFile(t *testing.T) {
	if !IsMarkupFile("index.html") || !IsMarkupFile("page.HTM") || !IsMarkupFile("css/main.css") {
		t.Error("Expected HTML and CSS files to be markup")
	}
	if IsMarkupFile("img/logo.png") || IsMarkupFile("app.js") {
		t.Error("Expected non-markup files to be rejected")
	}
}

func TestIsPlaceholderSizeThreshold(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()

	p := filepath.Join(dir, "tiny.png")
	if err := os.WriteFile(p, []byte("stub"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !s.isPlaceholder(p, 4) {
		t.Error("Expected file below size threshold to be a placeholder")
	}
}

func TestIsPlaceholderTinyDimensions(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()
	s.PlaceholderMaxBytes = 10 // force the decode path

	p := writePNG(t, dir, "pixel.png", 4, 4, noisy)
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	if !s.isPlaceholder(p, info.Size()) {
		t.Error("Expected 4x4 image to be a placeholder")
	}
}

func TestIsPlaceholderSolidColor(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()
	s.PlaceholderMaxBytes = 10

	p := writePNG(t, dir, "solid.png", 64, 64, solidGray)
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	if !s.isPlaceholder(p, info.Size()) {
		t.Error("Expected solid-color image to be a placeholder")
	}
}

func TestIsPlaceholderRealImage(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()
	s.PlaceholderMaxBytes = 10

	p := writePNG(t, dir, "photo.png", 64, 64, noisy)
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}

	if s.isPlaceholder(p, info.Size()) {
		t.Error("Expected varied image to not be a placeholder")
	}
}

func TestIsPlaceholderUndecodableRaster(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()
	s.PlaceholderMaxBytes = 10

	p := filepath.Join(dir, "broken.png")
	data := bytes.Repeat([]byte("not an image "), 10)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !s.isPlaceholder(p, int64(len(data))) {
		t.Error("Expected undecodable raster file to be a placeholder")
	}
}

func TestSVGStubDetection(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner()
	s.PlaceholderMaxBytes = 10

	stub := filepath.Join(dir, "stub.svg")
	stubContent := `<svg xmlns="http://www.w3.org/2000/svg"><text>Placeholder 300x200</text></svg>`
	if err := os.WriteFile(stub, []byte(stubContent), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if !s.isPlaceholder(stub, int64(len(stubContent))) {
		t.Error("Expected SVG with stub marker to be a placeholder")
	}

	real := filepath.Join(dir, "real.svg")
	realContent := `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0 L10 10 Z" fill="#c00"/></svg>`
	if err := os.WriteFile(real, []byte(realContent), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if s.isPlaceholder(real, int64(len(realContent))) {
		t.Error("Expected real SVG to not be a placeholder")
	}
}
