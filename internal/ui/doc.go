package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the scanner and the fetch service and renders
// the progress bar, the session log, and settings. All UI strings are
// localized via Localization.
