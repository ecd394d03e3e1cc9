// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"template-designer/internal/app"
	"template-designer/internal/item"
	"template-designer/internal/render"
	"template-designer/internal/template"
	"template-designer/internal/version"
	"template-designer/ui/canvas"
	"template-designer/ui/panels"
	"template-designer/ui/prefs"
)

const prefKeyLastDir = "last_directory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.DesignerCanvas
	propPanel *panels.PropertyPanel
	statusBar *widget.Label

	rotationSnapItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Template Designer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupShortcuts()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDesignerCanvas(mw.state)
	mw.propPanel = panels.NewPropertyPanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		mw.canvas.Container(),
	)

	split := container.NewHSplit(canvasArea, mw.propPanel.Widget())
	split.SetOffset(0.75) // property panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with item and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Photo Slot", mw.onAddPlaceholder),
		widget.NewButton("Image", mw.onAddImage),
		widget.NewButton("Text", mw.onAddText),
		widget.NewButton("Shape", mw.onAddShape),
		widget.NewSeparator(),
		widget.NewButton("Duplicate", mw.onDuplicate),
		widget.NewButton("Delete", mw.onDelete),
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("Fit", mw.canvas.FitToWindow),
		widget.NewButton("1:1", func() { mw.state.SetZoom(1.0) }),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Template", mw.onNewTemplate),
		fyne.NewMenuItem("Open Template...", mw.onOpenTemplate),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Template", mw.onSaveTemplate),
		fyne.NewMenuItem("Save Template As...", mw.onSaveTemplateAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Duplicate", mw.onDuplicate),
		fyne.NewMenuItem("Delete", mw.onDelete),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select All", mw.onSelectAll),
	)

	mw.rotationSnapItem = fyne.NewMenuItem("✓ Snap Rotation to 15°", mw.onToggleRotationSnap)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", func() { mw.state.SetZoom(1.0) }),
		fyne.NewMenuItemSeparator(),
		mw.rotationSnapItem,
	)

	insertMenu := fyne.NewMenu("Insert",
		fyne.NewMenuItem("Photo Slot", mw.onAddPlaceholder),
		fyne.NewMenuItem("Image...", mw.onAddImage),
		fyne.NewMenuItem("Text", mw.onAddText),
		fyne.NewMenuItem("Rectangle", func() { mw.addShape(item.ShapeRectangle) }),
		fyne.NewMenuItem("Ellipse", func() { mw.addShape(item.ShapeEllipse) }),
		fyne.NewMenuItem("Line", func() { mw.addShape(item.ShapeLine) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, insertMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventTemplateLoaded, func(data interface{}) {
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle("Template Designer - " + filepath.Base(path))
			mw.updateStatus("Template loaded: " + path)
			mw.prefs.SetString(prefs.KeyLastTemplate, path)
		} else {
			mw.SetTitle("Template Designer - " + mw.state.Name)
			mw.updateStatus("New template")
		}
	})

	mw.state.On(app.EventTemplateSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Template Designer - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
			mw.prefs.SetString(prefs.KeyLastTemplate, path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventZoomChanged, func(data interface{}) {
		if z, ok := data.(float64); ok {
			mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", z*100))
			mw.prefs.SetFloat(prefs.KeyZoom, z)
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if items, ok := data.([]item.Item); ok {
			switch len(items) {
			case 0:
				mw.updateStatus("Ready")
			case 1:
				mw.updateStatus(fmt.Sprintf("Selected: %s", items[0].Kind()))
			default:
				mw.updateStatus(fmt.Sprintf("Selected: %d items", len(items)))
			}
		}
	})

	mw.state.On(app.EventExportDone, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Exported: " + path)
		}
	})
}

// setupShortcuts wires keyboard handling on the window canvas.
func (mw *MainWindow) setupShortcuts() {
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDelete()
		case fyne.KeyEscape:
			mw.state.Selection.Clear()
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// RestoreSession reopens the last template and zoom from preferences.
func (mw *MainWindow) RestoreSession() {
	if z := mw.prefs.Float(prefs.KeyZoom, 0); z > 0 {
		mw.state.SetZoom(z)
	}
	last := mw.prefs.String(prefs.KeyLastTemplate)
	if last == "" {
		return
	}
	if err := mw.state.LoadTemplate(last); err != nil {
		mw.updateStatus("Could not reopen " + filepath.Base(last))
	}
}

// SavePreferences writes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Saving preferences failed")
	}
}

// Menu action handlers

func (mw *MainWindow) onNewTemplate() {
	mw.state.NewTemplate("untitled", mw.state.CanvasSize)
	mw.SetTitle("Template Designer - New Template")
}

func (mw *MainWindow) onOpenTemplate() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadTemplate(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{template.Extension}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveTemplate() {
	if mw.state.TemplatePath == "" {
		mw.onSaveTemplateAs()
		return
	}
	if err := mw.state.SaveTemplate(mw.state.TemplatePath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveTemplateAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != template.Extension {
			path += template.Extension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveTemplate(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName(mw.state.Name + template.Extension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)
		dpi := mw.prefs.Float(prefs.KeyExportDPI, mw.state.DPI)
		if err := mw.state.Export(path, render.Options{DPI: dpi}); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName(mw.state.Name + ".png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAddPlaceholder() {
	slot := 1
	for _, it := range mw.state.Store.Items() {
		if _, ok := it.(*item.PlaceholderItem); ok {
			slot++
		}
	}
	ph := item.NewPlaceholder(slot, 20, 20, mw.state.CanvasSize.Width-40, 120)
	if err := mw.state.AddItem(ph); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onAddImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		img := item.NewImage(path, 20, 20, 100, 100)
		if err := mw.state.AddItem(img); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAddText() {
	t := item.NewText("Your text here", 20, 20)
	if err := mw.state.AddItem(t); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onAddShape() {
	mw.addShape(item.ShapeRectangle)
}

func (mw *MainWindow) addShape(kind item.ShapeKind) {
	s := item.NewShape(kind, 20, 20, 100, 60)
	if err := mw.state.AddItem(s); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onDuplicate() {
	if err := mw.state.DuplicateSelection(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onDelete() {
	mw.state.DeleteSelection()
}

func (mw *MainWindow) onSelectAll() {
	_ = mw.state.Selection.Replace(mw.state.Store.Items())
}

func (mw *MainWindow) onToggleRotationSnap() {
	snap := !mw.canvas.RotationSnap()
	mw.canvas.SetRotationSnap(snap)
	if snap {
		mw.rotationSnapItem.Label = "✓ Snap Rotation to 15°"
	} else {
		mw.rotationSnapItem.Label = "  Snap Rotation to 15°"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Template Designer",
		fmt.Sprintf("Template Designer v%s\n\n"+
			"A layout editor for photo strip templates.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
