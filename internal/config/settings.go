package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyTemplateRoot       = "template_root"
	KeyRemoteURL          = "remote_url"
	KeyMaxParallel        = "max_parallel_fetches"
	KeyFollowMarkup       = "follow_markup_refs"
	KeyOverwriteStubs     = "overwrite_placeholders"
	KeyMaxFileSizeMB      = "max_file_size_mb"
	KeyUserAgent          = "user_agent"
	KeyLanguage           = "app_language"
	KeyOpenFolderComplete = "open_folder_on_complete"
)

// Default values
const (
	DefaultMaxParallel        = 4
	DefaultFollowMarkup       = true
	DefaultOverwriteStubs     = true
	DefaultMaxFileSizeMB      = 10
	DefaultLanguage           = "system"
	DefaultOpenFolderComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTemplateRoot returns the last used template root, empty if never set
func (s *Settings) GetTemplateRoot() string {
	return s.app.Preferences().String(KeyTemplateRoot)
}

// SetTemplateRoot remembers the template root for the next run
func (s *Settings) SetTemplateRoot(dir string) {
	s.app.Preferences().SetString(KeyTemplateRoot, dir)
}

// GetRemoteURL returns the last used demo base URL, empty if never set
func (s *Settings) GetRemoteURL() string {
	return s.app.Preferences().String(KeyRemoteURL)
}

// SetRemoteURL remembers the demo base URL for the next run
func (s *Settings) SetRemoteURL(url string) {
	s.app.Preferences().SetString(KeyRemoteURL, url)
}

// GetMaxParallel returns the maximum number of parallel fetches
func (s *Settings) GetMaxParallel() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallel(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallel sets the maximum number of parallel fetches
func (s *Settings) SetMaxParallel(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetFollowMarkup returns whether HTML/CSS references are scanned for
// missing files
func (s *Settings) GetFollowMarkup() bool {
	return s.app.Preferences().BoolWithFallback(KeyFollowMarkup, DefaultFollowMarkup)
}

// SetFollowMarkup sets whether HTML/CSS references are scanned
func (s *Settings) SetFollowMarkup(follow bool) {
	s.app.Preferences().SetBool(KeyFollowMarkup, follow)
}

// GetOverwritePlaceholders returns whether non-empty stub images get
// replaced, or only empty and missing files
func (s *Settings) GetOverwritePlaceholders() bool {
	return s.app.Preferences().BoolWithFallback(KeyOverwriteStubs, DefaultOverwriteStubs)
}

// SetOverwritePlaceholders sets whether non-empty stub images get replaced
func (s *Settings) SetOverwritePlaceholders(overwrite bool) {
	s.app.Preferences().SetBool(KeyOverwriteStubs, overwrite)
}

// GetMaxFileSizeMB returns the per-file size cap in megabytes
func (s *Settings) GetMaxFileSizeMB() int {
	value := s.app.Preferences().Int(KeyMaxFileSizeMB)
	if value <= 0 {
		s.SetMaxFileSizeMB(DefaultMaxFileSizeMB)
		return DefaultMaxFileSizeMB
	}
	return value
}

// SetMaxFileSizeMB sets the per-file size cap in megabytes
func (s *Settings) SetMaxFileSizeMB(mb int) {
	if mb < 1 {
		mb = 1
	}
	if mb > 100 {
		mb = 100
	}
	s.app.Preferences().SetInt(KeyMaxFileSizeMB, mb)
}

// GetUserAgent returns the User-Agent header for fetches, empty meaning
// the built-in default
func (s *Settings) GetUserAgent() string {
	return s.app.Preferences().String(KeyUserAgent)
}

// SetUserAgent sets the User-Agent header for fetches
func (s *Settings) SetUserAgent(ua string) {
	s.app.Preferences().SetString(KeyUserAgent, ua)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetOpenFolderOnComplete returns whether to open the template root in the
// file manager when a run finishes
func (s *Settings) GetOpenFolderOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyOpenFolderComplete, DefaultOpenFolderComplete)
}

// SetOpenFolderOnComplete sets whether to open the template root when a
// run finishes
func (s *Settings) SetOpenFolderOnComplete(open bool) {
	s.app.Preferences().SetBool(KeyOpenFolderComplete, open)
}
