package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/tplfill/tpl-fill/internal/fetch"
	"github.com/tplfill/tpl-fill/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.tplfill.tpl-fill")
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow("Template Filler")
	myWindow.Resize(fyne.NewSize(850, 500))

	// Create and setup UI
	fillSvc := fetch.NewService(nil, 4)
	ui.NewRootUI(myWindow, myApp, fillSvc)

	// Show and run
	myWindow.ShowAndRun()
}
