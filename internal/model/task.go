package model

import (
	"path/filepath"
	"strings"
	"time"
)

// CandidateReason explains why the scanner queued a file for fetching
type CandidateReason string

const (
	// ReasonMissing means the file is referenced by the template markup but absent on disk
	ReasonMissing CandidateReason = "missing"

	// ReasonEmpty means the file exists but has zero bytes
	ReasonEmpty CandidateReason = "empty"

	// ReasonPlaceholder means the file exists but looks like stub content
	ReasonPlaceholder CandidateReason = "placeholder"
)

// FetchTask represents a single image fetch task
type FetchTask struct {
	ID         string
	RelPath    string // slash-separated path relative to the template root
	LocalPath  string // absolute destination path on disk
	RemoteURL  string // resolved source URL on the demo site
	Reason     CandidateReason
	Status     TaskStatus
	Size       int64     // bytes written on success
	StatusCode int       // last HTTP status, 0 if the request never completed
	LastError  string    // last error message if any
	StartedAt  time.Time // when the fetch started
	FinishedAt time.Time // when the fetch finished
}

// DisplayName returns the file name, or the relative path when it is short
// enough to be more useful in a log line.
func (ft *FetchTask) DisplayName() string {
	if ft.RelPath == "" {
		return filepath.Base(ft.LocalPath)
	}
	if strings.Count(ft.RelPath, "/") <= 2 {
		return ft.RelPath
	}
	return filepath.Base(ft.RelPath)
}
