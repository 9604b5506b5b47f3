package fetch

import (
	"errors"
	"testing"
)

func TestBuildRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		relPath  string
		expected string
	}{
		{
			name:     "plain host",
			base:     "https://demo.example.com",
			relPath:  "img/hero.png",
			expected: "https://demo.example.com/img/hero.png",
		},
		{
			name:     "base with path and no trailing slash",
			base:     "https://example.com/templates/superfire",
			relPath:  "img/hero.png",
			expected: "https://example.com/templates/superfire/img/hero.png",
		},
		{
			name:     "base with trailing slash",
			base:     "https://example.com/demo/",
			relPath:  "css/bg.jpg",
			expected: "https://example.com/demo/css/bg.jpg",
		},
		{
			name:     "windows separators normalized",
			base:     "http://example.com",
			relPath:  `img\gallery\one.jpg`,
			expected: "http://example.com/img/gallery/one.jpg",
		},
		{
			name:     "leading slash stripped",
			base:     "https://example.com/demo",
			relPath:  "/img/a.png",
			expected: "https://example.com/demo/img/a.png",
		},
		{
			name:     "spaces escaped",
			base:     "https://example.com",
			relPath:  "img/my image.png",
			expected: "https://example.com/img/my%20image.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildRemoteURL(tt.base, tt.relPath)
			if err != nil {
				t.Fatalf("BuildRemoteURL failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("BuildRemoteURL(%q, %q) = %q, expected %q",
					tt.base, tt.relPath, got, tt.expected)
			}
		})
	}
}

func TestBuildRemoteURLInvalid(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		relPath string
	}{
		{"empty base", "", "img/a.png"},
		{"no scheme", "demo.example.com", "img/a.png"},
		{"wrong scheme", "ftp://example.com", "img/a.png"},
		{"missing host", "https://", "img/a.png"},
		{"empty relative path", "https://example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRemoteURL(tt.base, tt.relPath)
			if err == nil {
				t.Fatalf("Expected error for base=%q rel=%q", tt.base, tt.relPath)
			}
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("Expected ErrInvalidURL, got %v", err)
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	if err := ValidateBaseURL("https://demo.example.com/site"); err != nil {
		t.Errorf("Expected valid base URL, got error: %v", err)
	}
	if err := ValidateBaseURL("not a url"); err == nil {
		t.Error("Expected error for invalid base URL")
	}
}
