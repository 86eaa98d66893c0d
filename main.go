// Package main provides the entry point for the Sketchpad application.
package main

import (
	"log"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"sketchpad/internal/app"
	"sketchpad/internal/version"
	"sketchpad/ui/mainwindow"
	"sketchpad/ui/prefs"
)

const appTitle = "Sketchpad"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("sketchpad")
	fyneApp.Settings().SetTheme(&app.SketchpadTheme{})

	state := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state, appPrefs)
	win.SetTitle(appTitle)
	win.SetOnClosed(win.SavePreferences)

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload prompts for a restart when the binary is recompiled
// during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}
	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
