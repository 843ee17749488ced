// Package app wires the fieldmap window: the interactive canvas, the info
// side panel and the layout file watcher.
package app

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/pkg/field"
	"github.com/philipparndt/fieldmap/pkg/viewer"
	"github.com/philipparndt/fieldmap/pkg/watcher"
)

// reloadDebounce settles editor write bursts before re-importing.
const reloadDebounce = 300 * time.Millisecond

// Options selects the content shown at startup.
type Options struct {
	// LayoutPath is a layout document to import and watch for changes.
	// Empty means generate synthetic content instead.
	LayoutPath string
	// GenerateCount is the synthetic shape count when no layout is given.
	GenerateCount int
}

// App owns the window, the canvas and the side panel.
type App struct {
	window fyne.Window
	canvas *viewer.Canvas
	panel  *infoPanel
	watch  *watcher.LayoutWatcher
}

// Run opens the fieldmap window and blocks until it closes.
func Run(opts Options) error {
	a := fyneapp.New()
	w := a.NewWindow("Fieldmap")

	fm := &App{
		window: w,
		canvas: viewer.NewCanvas(viewer.DefaultCullConfig()),
	}
	fm.panel = newInfoPanel(fm)
	fm.canvas.SetOnCullStats(fm.panel.updateStats)
	fm.canvas.SetOnSelectionChanged(fm.panel.updateSelection)

	if opts.LayoutPath != "" {
		if err := fm.loadLayout(opts.LayoutPath); err != nil {
			return err
		}
		if err := fm.watchLayout(opts.LayoutPath); err != nil {
			logging.Logger().Warn("auto-reload unavailable", "err", err)
		}
	} else {
		fm.generate(opts.GenerateCount)
	}

	w.SetContent(fm.panel.layout(fm.canvas))
	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()

	if fm.watch != nil {
		fm.watch.Close()
	}
	return nil
}

func (a *App) loadLayout(path string) error {
	doc, err := field.LoadDocument(path)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	shapes := field.Import(doc)
	a.canvas.Load(shapes)
	a.panel.setSource(fmt.Sprintf("Layout: %s (%d shapes)", path, len(shapes)))
	logging.Logger().Info("layout imported", "path", path, "shapes", len(shapes))
	return nil
}

func (a *App) generate(count int) {
	cfg := field.DefaultGenConfig()
	if count > 0 {
		cfg.TargetCount = count
	}
	shapes := field.Generate(cfg)
	a.canvas.Load(shapes)
	a.panel.setSource(fmt.Sprintf("Synthetic: %d shapes", len(shapes)))
	logging.Logger().Info("synthetic layout generated", "shapes", len(shapes))
}

// watchLayout re-imports the document whenever it changes on disk. The
// callback arrives on a timer goroutine; fyne.Do hops onto the UI thread.
func (a *App) watchLayout(path string) error {
	watch, err := watcher.New(path, reloadDebounce, func(changed string) {
		fyne.Do(func() {
			if err := a.loadLayout(changed); err != nil {
				dialog.ShowError(err, a.window)
			}
		})
	})
	if err != nil {
		return err
	}
	watch.Start()
	a.watch = watch
	return nil
}
