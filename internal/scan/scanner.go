package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tplfill/tpl-fill/internal/model"
)

// Scanner defaults
const (
	DefaultPlaceholderMaxBytes = 1024
	DefaultMinPixelSize        = 8
	DefaultSolidColorMaxBytes  = 16 * 1024
)

// Candidate is a single image path the scanner wants fetched
type Candidate struct {
	RelPath   string // slash-separated, relative to the template root
	LocalPath string // absolute destination path
	Reason    model.CandidateReason
}

// Result summarizes a completed scan
type Result struct {
	Root        string
	Candidates  []Candidate
	TotalImages int // image files found on disk
	Healthy     int // image files that need no fetching
	MarkupFiles int // HTML/CSS files inspected for references
}

// Scanner walks a template root and collects fetch candidates
type Scanner struct {
	// PlaceholderMaxBytes marks any raster image at or below this size as a stub
	PlaceholderMaxBytes int64

	// MinPixelSize marks images whose width or height is at or below this as a stub
	MinPixelSize int

	// SolidColorMaxBytes bounds how large a file still gets the solid-color decode pass
	SolidColorMaxBytes int64

	// FollowMarkup enables the HTML/CSS reference pass that finds missing files
	FollowMarkup bool

	// ReplacePlaceholders queues non-empty stub images for fetching. When
	// off, only empty and missing files become candidates.
	ReplacePlaceholders bool

	onLog func(string)
}

// NewScanner creates a scanner with default thresholds
func NewScanner() *Scanner {
	return &Scanner{
		PlaceholderMaxBytes: DefaultPlaceholderMaxBytes,
		MinPixelSize:        DefaultMinPixelSize,
		SolidColorMaxBytes:  DefaultSolidColorMaxBytes,
		FollowMarkup:        true,
		ReplacePlaceholders: true,
	}
}

// SetLogCallback sets the callback for human-readable scan log lines
func (s *Scanner) SetLogCallback(callback func(string)) {
	s.onLog = callback
}

// Scan walks root and returns the candidates that need fetching.
// Candidates are returned in a stable order: on-disk stubs first (walk
// order), then missing references (sorted).
func (s *Scanner) Scan(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("template root does not exist: %s", root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template root is not a directory: %s", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	result := &Result{Root: absRoot}
	seen := make(map[string]bool) // rel paths already on disk or queued
	var markupFiles []string      // rel paths of HTML/CSS files

	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.log(fmt.Sprintf("Scan error at %s: %v", p, walkErr))
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if IsMarkupFile(rel) {
			markupFiles = append(markupFiles, rel)
			return nil
		}
		if !IsImageFile(rel) {
			return nil
		}

		result.TotalImages++
		seen[rel] = true

		reason, stub := s.classify(p)
		if !stub {
			result.Healthy++
			return nil
		}
		if reason == model.ReasonPlaceholder && !s.ReplacePlaceholders {
			return nil
		}

		result.Candidates = append(result.Candidates, Candidate{
			RelPath:   rel,
			LocalPath: p,
			Reason:    reason,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.FollowMarkup {
		result.MarkupFiles = len(markupFiles)
		missing := s.collectMissingRefs(absRoot, markupFiles, seen)
		result.Candidates = append(result.Candidates, missing...)
	}

	s.log(fmt.Sprintf("Scan finished: %d image files, %d healthy, %d to fetch",
		result.TotalImages, result.Healthy, len(result.Candidates)))

	return result, nil
}

// classify decides whether an on-disk image is a stub that should be replaced
func (s *Scanner) classify(localPath string) (model.CandidateReason, bool) {
	info, err := os.Stat(localPath)
	if err != nil {
		return model.ReasonMissing, true
	}

	if info.Size() == 0 {
		return model.ReasonEmpty, true
	}

	if s.isPlaceholder(localPath, info.Size()) {
		return model.ReasonPlaceholder, true
	}

	return "", false
}

// collectMissingRefs extracts image references from markup files and returns
// candidates for the ones with no file on disk.
func (s *Scanner) collectMissingRefs(absRoot string, markupFiles []string, seen map[string]bool) []Candidate {
	var candidates []Candidate

	for _, mf := range markupFiles {
		content, err := os.ReadFile(filepath.Join(absRoot, filepath.FromSlash(mf)))
		if err != nil {
			s.log(fmt.Sprintf("Cannot read %s: %v", mf, err))
			continue
		}

		var refs []string
		if strings.HasSuffix(strings.ToLower(mf), ".css") {
			refs = ExtractCSSRefs(content)
		} else {
			refs = ExtractHTMLRefs(content)
		}

		baseDir := path.Dir(mf)
		for _, ref := range refs {
			rel, ok := resolveRef(baseDir, ref)
			if !ok || !IsImageFile(rel) || seen[rel] {
				continue
			}
			seen[rel] = true

			localPath := filepath.Join(absRoot, filepath.FromSlash(rel))
			if _, err := os.Stat(localPath); err == nil {
				// Exists on disk (non-image ext check above already filtered);
				// the walk pass owns its classification.
				continue
			}

			candidates = append(candidates, Candidate{
				RelPath:   rel,
				LocalPath: localPath,
				Reason:    model.ReasonMissing,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].RelPath < candidates[j].RelPath
	})
	return candidates
}

// resolveRef turns a markup reference into a root-relative slash path.
// References that leave the root or point at other hosts are rejected.
func resolveRef(baseDir, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(ref, "#") {
		return "", false
	}
	// External or protocol-relative URLs point at other hosts
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "//") {
		return "", false
	}

	// Strip query and fragment
	if idx := strings.IndexAny(ref, "?#"); idx >= 0 {
		ref = ref[:idx]
	}
	if ref == "" {
		return "", false
	}

	ref = strings.ReplaceAll(ref, "\\", "/")

	var rel string
	if strings.HasPrefix(ref, "/") {
		rel = path.Clean(strings.TrimPrefix(ref, "/"))
	} else {
		rel = path.Clean(path.Join(baseDir, ref))
	}

	if rel == "." || strings.HasPrefix(rel, "../") || rel == ".." {
		return "", false
	}
	return rel, true
}

func (s *Scanner) log(msg string) {
	if s.onLog != nil {
		s.onLog(msg)
	}
}
