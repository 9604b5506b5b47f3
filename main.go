package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tplfill/tpl-fill/internal/config"
	"github.com/tplfill/tpl-fill/internal/fetch"
	"github.com/tplfill/tpl-fill/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.tplfill.tpl-fill"
	AppName = "Template Filler"

	WindowWidth  = 850
	WindowHeight = 500
)

func main() {
	// Log version information
	fmt.Printf("Template Filler v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	client := fetch.NewClient(fetch.ClientConfig{
		MaxFileSize: int64(settings.GetMaxFileSizeMB()) * 1024 * 1024,
		UserAgent:   settings.GetUserAgent(),
	})
	fillSvc := fetch.NewService(client, settings.GetMaxParallel())

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, fillSvc)

	// Show and run
	myWindow.ShowAndRun()
}
