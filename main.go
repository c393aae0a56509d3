// Package main provides the entry point for the schematic editor.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"schematic-editor/internal/app"
	"schematic-editor/internal/project"
	"schematic-editor/internal/scene"
	"schematic-editor/internal/settings"
	"schematic-editor/internal/version"
	"schematic-editor/ui/mainwindow"
	"schematic-editor/ui/prefs"
)

const appTitle = "Schematic Editor"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("schematic-editor")
	fyneApp.Settings().SetTheme(&app.EditorTheme{})

	appPrefs := prefs.Load()
	sc := scene.New(settings.Default())

	// Load a project given on the command line
	if len(os.Args) > 1 {
		path := os.Args[1]
		doc, err := project.Load(path)
		if err != nil {
			log.Printf("Failed to load project %s: %v", path, err)
		} else {
			sc = doc.ToScene()
		}
	}

	win := mainwindow.New(fyneApp, sc, appPrefs)
	win.SetTitle(appTitle)

	setupHotReload(win)

	win.ShowAndRun()
	win.SavePreferences()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
