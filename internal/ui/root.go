package ui

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/tplfill/tpl-fill/internal/config"
	"github.com/tplfill/tpl-fill/internal/fetch"
	"github.com/tplfill/tpl-fill/internal/model"
	"github.com/tplfill/tpl-fill/internal/platform"
	"github.com/tplfill/tpl-fill/internal/scan"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	rootEntry    *widget.Entry
	urlEntry     *widget.Entry
	scanBtn      *widget.Button
	fillBtn      *widget.Button
	statusLabel  *widget.Label
	progressBar  *widget.ProgressBar
	percentLabel *widget.Label
	logList      *widget.List

	fillSvc      fetch.Filler
	settings     *config.Settings
	localization *Localization

	// Scan state reused by the Fill button
	stateMutex  sync.Mutex
	candidates  []scan.Candidate
	scannedRoot string

	// Session log shown in the list
	logMutex sync.Mutex
	logLines []string

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, fillSvc fetch.Filler) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		fillSvc:      fillSvc,
		settings:     settings,
		localization: localization,
	}

	log.Printf("RootUI initialized with fetch service: %v", ui.fillSvc != nil)

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Wire service callbacks into the log panel, the status line, and the
	// progress bar
	ui.fillSvc.SetLogCallback(ui.appendLog)
	ui.fillSvc.SetProgressCallback(ui.onProgress)
	ui.fillSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Template root row: entry plus folder browser
	ui.rootEntry = widget.NewEntry()
	ui.rootEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterRoot))
	if last := ui.settings.GetTemplateRoot(); last != "" {
		ui.rootEntry.SetText(last)
	}

	browseBtn := widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseRoot)
	rootRow := container.NewBorder(nil, nil, nil, browseBtn, ui.rootEntry)

	// Demo site URL row
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURLInput
	if last := ui.settings.GetRemoteURL(); last != "" {
		ui.urlEntry.SetText(last)
	}
	// Trigger the fill when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onFillClick()
	}

	// Action buttons
	ui.scanBtn = widget.NewButton(ui.localization.GetText(KeyScan), ui.onScanClick)
	ui.fillBtn = widget.NewButton(ui.localization.GetText(KeyFill), ui.onFillClick)
	ui.fillBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	buttonRow := container.NewHBox(settingsBtn, ui.scanBtn, ui.fillBtn)

	// Status line and progress bar with a percent readout
	ui.statusLabel = widget.NewLabel(ui.localization.GetText(KeyReady))
	ui.progressBar = widget.NewProgressBar()
	ui.percentLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	progressRow := container.NewBorder(nil, nil, nil, ui.percentLabel, ui.progressBar)

	topPanel := container.NewVBox(
		rootRow,
		container.NewBorder(nil, nil, nil, buttonRow, ui.urlEntry),
		ui.statusLabel,
		progressRow,
	)

	// Session log
	ui.logList = widget.NewList(
		func() int {
			ui.logMutex.Lock()
			defer ui.logMutex.Unlock()
			return len(ui.logLines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.logMutex.Lock()
			defer ui.logMutex.Unlock()
			if id >= len(ui.logLines) {
				return
			}
			obj.(*widget.Label).SetText(ui.logLines[id])
		},
	)

	content := container.NewBorder(
		topPanel,   // top
		nil,        // bottom
		nil,        // left
		nil,        // right
		ui.logList, // center - session log
	)

	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.rootEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterRoot))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.scanBtn.SetText(ui.localization.GetText(KeyScan))
	if ui.fillSvc.Active() {
		ui.fillBtn.SetText(ui.localization.GetText(KeyStop))
	} else {
		ui.fillBtn.SetText(ui.localization.GetText(KeyFill))
	}
}

// validateURLInput validates the entered base URL
func (ui *RootUI) validateURLInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// onBrowseRoot opens the folder picker for the template root, starting at
// the current entry or the home directory
func (ui *RootUI) onBrowseRoot() {
	picker := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.rootEntry.SetText(uri.Path())
	}, ui.window)

	start := strings.TrimSpace(ui.rootEntry.Text)
	if start == "" {
		if home, err := platform.GetHomeDir(); err == nil {
			start = home
		}
	}
	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			picker.SetLocation(lister)
		}
	}

	picker.Show()
}

// onTaskUpdate shows the file currently being fetched in the status line
func (ui *RootUI) onTaskUpdate(task *model.FetchTask) {
	if !task.Status.IsActive() {
		return
	}

	name := task.DisplayName()
	fyne.Do(func() {
		ui.statusLabel.SetText(name)
	})
}

// onScanClick handles the scan button click
func (ui *RootUI) onScanClick() {
	root := strings.TrimSpace(ui.rootEntry.Text)
	if root == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPleaseChooseRoot)), ui.window.Canvas())
		return
	}

	ui.statusLabel.SetText(ui.localization.GetText(KeyScanning))

	go func() {
		result, err := ui.runScan(root)

		fyne.Do(func() {
			if err != nil {
				log.Printf("Scan failed for %s: %v", root, err)
				ui.statusLabel.SetText(ui.localization.GetText(KeyScanFailed) + ": " + err.Error())
				return
			}

			if len(result.Candidates) == 0 {
				ui.statusLabel.SetText(ui.localization.GetText(KeyNothingToFetch))
				return
			}

			ui.statusLabel.SetText(fmt.Sprintf("%d %s",
				len(result.Candidates), ui.localization.GetText(KeyFilesToFetch)))
		})
	}()
}

// onFillClick handles the fill button click. While a session runs the same
// button stops it.
func (ui *RootUI) onFillClick() {
	if ui.fillSvc.Active() {
		ui.fillSvc.Stop()
		return
	}

	root := strings.TrimSpace(ui.rootEntry.Text)
	if root == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPleaseChooseRoot)), ui.window.Canvas())
		return
	}

	baseURL := strings.TrimSpace(ui.urlEntry.Text)
	if baseURL == "" {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyPleaseEnterURL)), ui.window.Canvas())
		return
	}
	if err := ui.validateURLInput(baseURL); err != nil {
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyInvalidURL)+": "+err.Error()), ui.window.Canvas())
		return
	}

	// Remember inputs for the next run
	ui.settings.SetTemplateRoot(root)
	ui.settings.SetRemoteURL(baseURL)

	ui.fillSvc.SetMaxParallel(ui.settings.GetMaxParallel())

	// Flip the button before any work starts; failure paths and session
	// completion flip it back
	ui.fillBtn.SetText(ui.localization.GetText(KeyStop))
	ui.statusLabel.SetText(ui.localization.GetText(KeyScanning))
	ui.progressBar.SetValue(0)
	ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, 0))

	go func() {
		candidates, err := ui.candidatesFor(root)
		if err != nil {
			log.Printf("Scan failed for %s: %v", root, err)
			fyne.Do(func() {
				ui.statusLabel.SetText(ui.localization.GetText(KeyScanFailed) + ": " + err.Error())
				ui.fillBtn.SetText(ui.localization.GetText(KeyFill))
			})
			return
		}

		if len(candidates) == 0 {
			fyne.Do(func() {
				ui.statusLabel.SetText(ui.localization.GetText(KeyNothingToFetch))
				ui.fillBtn.SetText(ui.localization.GetText(KeyFill))
			})
			return
		}

		// Queued before Start so it cannot land after the session finishes
		fyne.Do(func() {
			ui.statusLabel.SetText(ui.localization.GetText(KeyFillStarted))
		})

		if err := ui.fillSvc.Start(root, baseURL, candidates); err != nil {
			log.Printf("Failed to start fill session: %v", err)
			fyne.Do(func() {
				ui.fillBtn.SetText(ui.localization.GetText(KeyFill))
				widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
			})
			return
		}
	}()
}

// candidatesFor returns the cached scan result for root, scanning if needed
func (ui *RootUI) candidatesFor(root string) ([]scan.Candidate, error) {
	ui.stateMutex.Lock()
	cached := ui.candidates
	cachedRoot := ui.scannedRoot
	ui.stateMutex.Unlock()

	if cached != nil && cachedRoot == root {
		return cached, nil
	}

	result, err := ui.runScan(root)
	if err != nil {
		return nil, err
	}
	return result.Candidates, nil
}

// runScan walks the template root and caches its candidates
func (ui *RootUI) runScan(root string) (*scan.Result, error) {
	scanner := scan.NewScanner()
	scanner.FollowMarkup = ui.settings.GetFollowMarkup()
	scanner.ReplacePlaceholders = ui.settings.GetOverwritePlaceholders()
	scanner.SetLogCallback(ui.appendLog)

	result, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	ui.stateMutex.Lock()
	ui.candidates = result.Candidates
	ui.scannedRoot = root
	ui.stateMutex.Unlock()

	return result, nil
}

// onProgress handles session progress from the fetch service
func (ui *RootUI) onProgress(done, total int) {
	if total <= 0 {
		return
	}

	percent := int(float64(done) / float64(total) * 100)
	finished := done >= total

	fyne.Do(func() {
		ui.progressBar.SetValue(float64(done) / float64(total))
		ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))

		if finished {
			ui.onSessionFinished()
		}
	})
}

// onSessionFinished resets controls and notifies the user. Runs on the UI
// thread.
func (ui *RootUI) onSessionFinished() {
	// The cached scan no longer reflects the disk
	ui.stateMutex.Lock()
	ui.candidates = nil
	ui.scannedRoot = ""
	ui.stateMutex.Unlock()

	summary := ui.fillSvc.Summary()
	ui.statusLabel.SetText(fmt.Sprintf("%s%s%d/%d",
		ui.localization.GetText(KeyFillCompleted), MiddleDotSeparator, summary.Completed, summary.Total))
	ui.fillBtn.SetText(ui.localization.GetText(KeyFill))
	ui.logList.Refresh()

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyAppTitle),
		Content: fmt.Sprintf("%s: %d/%d", ui.localization.GetText(KeyFillCompleted), summary.Completed, summary.Total),
	})

	if ui.settings.GetOpenFolderOnComplete() {
		root := strings.TrimSpace(ui.rootEntry.Text)
		if root != "" {
			if err := platform.OpenFolderInManager(root); err != nil {
				log.Printf("Error opening folder %s: %v", root, err)
				widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFolder)+": "+err.Error()), ui.window.Canvas())
			}
		}
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		// Apply settings that affect a session before the next start
		ui.fillSvc.SetMaxParallel(ui.settings.GetMaxParallel())

		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()

		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeySettingsSaved)), ui.window.Canvas())
	})
}

// appendLog adds a line to the session log. Safe to call from any goroutine.
func (ui *RootUI) appendLog(msg string) {
	ui.logMutex.Lock()
	ui.logLines = append(ui.logLines, msg)
	ui.logMutex.Unlock()

	if !ui.shouldRefresh() {
		return
	}

	fyne.Do(func() {
		ui.logList.Refresh()
		ui.logList.ScrollToBottom()
	})
}

// shouldRefresh prevents excessive log refreshes by limiting frequency
func (ui *RootUI) shouldRefresh() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}

	ui.lastUIUpdate = now
	return true
}
