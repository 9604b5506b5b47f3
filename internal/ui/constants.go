package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconClose    = "×"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	PercentLabelWidth float32 = 48

	LogRowHeight     float32 = 22
	SettingsDialogW  float32 = 500
	SettingsDialogH  float32 = 420
	StatusLabelWidth float32 = 84
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)
