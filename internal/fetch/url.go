package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildRemoteURL resolves a root-relative file path against the demo base
// URL, the way a browser joins a relative href: the base is treated as a
// directory, and Windows separators in the relative path are normalized.
func BuildRemoteURL(base, relPath string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", fmt.Errorf("%w: empty base URL", ErrInvalidURL)
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	rel := strings.ReplaceAll(relPath, "\\", "/")
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", fmt.Errorf("%w: empty relative path", ErrInvalidURL)
	}

	ref, err := url.Parse(rel)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	return parsed.ResolveReference(ref).String(), nil
}

// ValidateBaseURL reports whether the string is a usable demo base URL
func ValidateBaseURL(base string) error {
	_, err := BuildRemoteURL(base, "probe")
	return err
}
