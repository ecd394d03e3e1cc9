// Package main provides the entry point for the Template Designer
// application.
package main

import (
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	designer "template-designer/internal/app"
	"template-designer/ui/mainwindow"
	"template-designer/ui/prefs"
)

const appTitle = "Template Designer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", appTitle)

	fyneApp := app.NewWithID("template-designer")
	appPrefs := prefs.Load()

	state := designer.NewState(designer.Config{
		PoolCapacity:            appPrefs.Int(prefs.KeyPoolCapacity, 0),
		SnapStep:                appPrefs.Float(prefs.KeySnapStep, 0),
		InstantPreviewThreshold: appPrefs.Int(prefs.KeyInstantThreshold, 0),
		// Selection changes originate from UI event handlers and the
		// manager batches multi-item bursts itself, so synchronous
		// notification stays one callback per operation.
		Schedule: nil,
	})

	win := mainwindow.New(fyneApp, state, appPrefs)
	win.Resize(fyne.NewSize(1200, 800))

	// A template path on the command line wins over the saved session.
	if len(os.Args) > 1 {
		if err := state.LoadTemplate(os.Args[1]); err != nil {
			log.Printf("Failed to load template %s: %v", os.Args[1], err)
		}
	} else {
		win.RestoreSession()
	}

	setupTemplateWatch(win, state)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})
	win.ShowAndRun()
}

// setupTemplateWatch reloads the open template when it changes on disk,
// after confirmation. A new watcher attaches on every load or save.
func setupTemplateWatch(win *mainwindow.MainWindow, state *designer.State) {
	var watcher *designer.TemplateWatcher

	attach := func(data interface{}) {
		path, ok := data.(string)
		if !ok || path == "" {
			return
		}
		if watcher != nil {
			watcher.Stop()
		}
		watcher = designer.NewTemplateWatcher(path, 2*time.Second)
		if watcher == nil {
			log.Printf("Template watch: cannot stat %s", path)
			return
		}
		w := watcher
		w.OnChanged(func() {
			dialog.ShowConfirm("Template Changed",
				"The template file changed on disk.\nReload and discard unsaved changes?",
				func(reload bool) {
					if reload {
						if err := state.LoadTemplate(w.Path()); err != nil {
							log.Printf("Template watch: reload failed: %v", err)
						}
						return
					}
					w.ResetBaseline()
					w.Start()
				}, win.Window)
		})
		w.Start()
	}

	state.On(designer.EventTemplateLoaded, attach)
	state.On(designer.EventTemplateSaved, attach)
}
