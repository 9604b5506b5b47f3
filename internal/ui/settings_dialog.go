package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tplfill/tpl-fill/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	maxParallelEntry *widget.Entry
	maxFileSizeEntry *widget.Entry
	userAgentEntry   *widget.Entry
	followMarkupChk  *widget.Check
	overwriteChk     *widget.Check
	openFolderChk    *widget.Check
	languageSelect   *widget.Select
}

// ShowSettingsDialog builds and displays the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Max parallel downloads
	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	// Per-file size cap
	sd.maxFileSizeEntry = widget.NewEntry()
	sd.maxFileSizeEntry.SetPlaceHolder("1-100")

	// User agent override, empty keeps the built-in default
	sd.userAgentEntry = widget.NewEntry()
	sd.userAgentEntry.SetPlaceHolder("Mozilla/5.0 ...")

	// Scan behavior
	sd.followMarkupChk = widget.NewCheck(sd.localization.GetText(KeyFollowMarkup), nil)
	sd.overwriteChk = widget.NewCheck(sd.localization.GetText(KeyOverwriteStubs), nil)
	sd.openFolderChk = widget.NewCheck(sd.localization.GetText(KeyOpenFolderDone), nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.localization.GetAvailableLanguages() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewLabel(sd.localization.GetText(KeyMaxFileSize)+":"),
		sd.maxFileSizeEntry,

		widget.NewLabel(sd.localization.GetText(KeyUserAgent)+":"),
		sd.userAgentEntry,

		widget.NewSeparator(),
		sd.followMarkupChk,
		sd.overwriteChk,
		sd.openFolderChk,

		widget.NewSeparator(),
		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallel()))
	sd.maxFileSizeEntry.SetText(strconv.Itoa(sd.settings.GetMaxFileSizeMB()))
	sd.userAgentEntry.SetText(sd.settings.GetUserAgent())
	sd.followMarkupChk.SetChecked(sd.settings.GetFollowMarkup())
	sd.overwriteChk.SetChecked(sd.settings.GetOverwritePlaceholders())
	sd.openFolderChk.SetChecked(sd.settings.GetOpenFolderOnComplete())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Validate and save max parallel downloads
	if text := sd.maxParallelEntry.Text; text != "" {
		if maxParallel, err := strconv.Atoi(text); err == nil {
			sd.settings.SetMaxParallel(maxParallel)
		}
	}

	// Validate and save the size cap
	if text := sd.maxFileSizeEntry.Text; text != "" {
		if mb, err := strconv.Atoi(text); err == nil {
			sd.settings.SetMaxFileSizeMB(mb)
		}
	}

	sd.settings.SetUserAgent(sd.userAgentEntry.Text)
	sd.settings.SetFollowMarkup(sd.followMarkupChk.Checked)
	sd.settings.SetOverwritePlaceholders(sd.overwriteChk.Checked)
	sd.settings.SetOpenFolderOnComplete(sd.openFolderChk.Checked)

	// Save language
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
