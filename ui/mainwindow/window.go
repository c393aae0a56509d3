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

	"schematic-editor/internal/history"
	"schematic-editor/internal/netlist"
	"schematic-editor/internal/node"
	"schematic-editor/internal/project"
	"schematic-editor/internal/render"
	"schematic-editor/internal/scene"
	"schematic-editor/internal/version"
	"schematic-editor/ui/canvas"
	"schematic-editor/ui/prefs"
)

const (
	prefKeyLastDir     = "lastDirectory"
	prefKeyLastProject = "lastProject"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	scene     *scene.Scene
	history   *history.Stack
	canvas    *canvas.SchematicCanvas
	statusBar *widget.Label
	prefs     *prefs.Prefs

	projectPath string
	wireModeBtn *widget.Button
}

// New creates a new main window over the given scene.
func New(fyneApp fyne.App, s *scene.Scene, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Schematic Editor")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		scene:   s,
		history: history.NewStack(),
		prefs:   p,
	}

	mw.setupUI()
	mw.setupMenus()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewSchematicCanvas(mw.scene, mw.history)
	mw.statusBar = widget.NewLabel("Ready")
	mw.canvas.OnStatus = mw.setStatus

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

// createToolbar creates the toolbar with editing controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.wireModeBtn = widget.NewButton("Draw Wire", mw.onToggleWireMode)
	postureBtn := widget.NewButton("Flip Posture", func() {
		mw.scene.ToggleWirePosture()
		mw.canvas.Refresh()
	})
	undoBtn := widget.NewButton("Undo", mw.onUndo)
	redoBtn := widget.NewButton("Redo", mw.onRedo)
	addNodeBtn := widget.NewButton("Add Node", mw.onAddNode)
	deleteBtn := widget.NewButton("Delete", mw.onDeleteSelected)

	return container.NewHBox(
		mw.wireModeBtn,
		postureBtn,
		widget.NewSeparator(),
		addNodeBtn,
		deleteBtn,
		widget.NewSeparator(),
		undoBtn,
		redoBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", mw.onNew),
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSave),
		fyne.NewMenuItem("Save As...", mw.onSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItem("Export Netlist...", mw.onExportNetlist),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rotate Selected 90", mw.onRotateSelected),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Toggle Wire Mode", mw.onToggleWireMode),
		fyne.NewMenuItem("Flip Wire Posture", func() {
			mw.scene.ToggleWirePosture()
			mw.canvas.Refresh()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

func (mw *MainWindow) setStatus(msg string) {
	mw.statusBar.SetText(msg)
}

func (mw *MainWindow) onToggleWireMode() {
	if mw.scene.Mode() == scene.ModeWire {
		mw.scene.SetMode(scene.ModeNormal)
		mw.wireModeBtn.SetText("Draw Wire")
		mw.setStatus("Ready")
	} else {
		mw.scene.SetMode(scene.ModeWire)
		mw.wireModeBtn.SetText("Stop Drawing")
		mw.setStatus("Click to place wire points, double-click to finish")
	}
	mw.canvas.Refresh()
}

func (mw *MainWindow) onUndo() {
	if mw.history.Undo() {
		mw.canvas.Refresh()
		mw.setStatus("Undone")
	}
}

func (mw *MainWindow) onRedo() {
	if mw.history.Redo() {
		mw.canvas.Refresh()
		mw.setStatus("Redone")
	}
}

func (mw *MainWindow) onAddNode() {
	n := node.New("")
	n.Position = mw.scene.Settings().SnapPoint(n.Position)
	mw.scene.AddNode(n)
	mw.canvas.Refresh()
	mw.setStatus(fmt.Sprintf("Added node %s", n.ID))
}

func (mw *MainWindow) onDeleteSelected() {
	n := mw.canvas.Selected()
	if n == nil {
		mw.setStatus("Nothing selected")
		return
	}
	mw.scene.RemoveNode(n.ID)
	mw.canvas.Refresh()
	mw.setStatus(fmt.Sprintf("Deleted node %s", n.ID))
}

func (mw *MainWindow) onRotateSelected() {
	n := mw.canvas.Selected()
	if n == nil || !n.AllowRotate {
		return
	}
	mw.history.Push(&history.RotateNode{
		Scene: mw.scene, NodeID: n.ID, NewAngle: n.Rotation() + 90,
	})
	mw.canvas.Refresh()
}

func (mw *MainWindow) onNew() {
	mw.scene.Clear()
	mw.history.Clear()
	mw.projectPath = ""
	mw.canvas.Refresh()
	mw.setStatus("New project")
}

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		doc, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.scene = doc.ToScene()
		mw.canvas.Scene = mw.scene
		mw.history.Clear()
		mw.projectPath = path
		mw.prefs.SetString(prefKeyLastProject, path)
		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
		mw.canvas.Refresh()
		mw.setStatus(fmt.Sprintf("Opened %s", filepath.Base(path)))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onSave() {
	if mw.projectPath == "" {
		mw.onSaveAs()
		return
	}
	mw.saveTo(mw.projectPath)
}

func (mw *MainWindow) onSaveAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		mw.saveTo(path)
	}, mw.Window)
	fd.SetFileName("schematic.json")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) saveTo(path string) {
	name := filepath.Base(path)
	doc := project.FromScene(name, mw.scene)
	if err := doc.Save(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.projectPath = path
	mw.history.SetClean()
	mw.prefs.SetString(prefKeyLastProject, path)
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
	mw.setStatus(fmt.Sprintf("Saved %s", name))
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		sz := mw.canvas.Size()
		opts := render.DefaultOptions(int(sz.Width), int(sz.Height))
		if err := render.SavePNG(path, mw.scene, opts); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setStatus(fmt.Sprintf("Exported %s", filepath.Base(path)))
	}, mw.Window)
	fd.SetFileName("schematic.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.Show()
}

func (mw *MainWindow) onExportNetlist() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		name := "untitled"
		if mw.projectPath != "" {
			name = filepath.Base(mw.projectPath)
		}
		nl := netlist.Build(mw.scene, name)
		if err := nl.SaveJSON(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setStatus(fmt.Sprintf("Exported %d nets to %s", len(nl.Nets), filepath.Base(path)))
	}, mw.Window)
	fd.SetFileName("netlist.json")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		fmt.Sprintf("Schematic Editor\nVersion %s", version.Version), mw.Window)
}

// SavePreferences flushes preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		mw.setStatus(fmt.Sprintf("Failed to save preferences: %v", err))
	}
}
