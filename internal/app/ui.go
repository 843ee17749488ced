package app

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/fieldmap/pkg/viewer"
)

// infoPanel is the right-hand sidebar: layout source, culling metrics,
// selection details and the editing buttons.
type infoPanel struct {
	app *App

	sourceLabel    *widget.Label
	visibleLabel   *widget.Label
	inSceneLabel   *widget.Label
	churnLabel     *widget.Label
	lodLabel       *widget.Label
	elapsedLabel   *widget.Label
	selectionLabel *widget.Label
}

func newInfoPanel(app *App) *infoPanel {
	p := &infoPanel{
		app:            app,
		sourceLabel:    widget.NewLabel(""),
		visibleLabel:   widget.NewLabel("Visible: -"),
		inSceneLabel:   widget.NewLabel("In scene: -"),
		churnLabel:     widget.NewLabel("Attached/detached: -"),
		lodLabel:       widget.NewLabel("Detail level: full"),
		elapsedLabel:   widget.NewLabel("Cull time: -"),
		selectionLabel: widget.NewLabel("Selection: none"),
	}
	p.sourceLabel.Wrapping = fyne.TextWrapWord
	p.selectionLabel.Wrapping = fyne.TextWrapWord
	return p
}

func (p *infoPanel) setSource(text string) {
	p.sourceLabel.SetText(text)
}

func (p *infoPanel) updateStats(stats viewer.CullStats) {
	p.visibleLabel.SetText(fmt.Sprintf("Visible: %d / %d", stats.Visible, stats.Total))
	p.inSceneLabel.SetText(fmt.Sprintf("In scene: %d", stats.InScene))
	p.churnLabel.SetText(fmt.Sprintf("Attached/detached: %d / %d", stats.Attached, stats.Detached))
	p.lodLabel.SetText("Detail level: " + lodName(stats.LODLevel))
	p.elapsedLabel.SetText(fmt.Sprintf("Cull time: %s", stats.Elapsed.Round(10*time.Microsecond)))
}

func (p *infoPanel) updateSelection(ids []string) {
	switch len(ids) {
	case 0:
		p.selectionLabel.SetText("Selection: none")
	case 1:
		p.selectionLabel.SetText("Selection: " + ids[0])
	default:
		p.selectionLabel.SetText(fmt.Sprintf("Selection: %d shapes\n%s",
			len(ids), strings.Join(ids, ", ")))
	}
}

func lodName(level int) string {
	switch level {
	case 1:
		return "medium (lines hidden)"
	case 2:
		return "low (lines and markers hidden)"
	}
	return "full"
}

// layout assembles the window content: the canvas in the center, the panel
// in a scrollable strip on the right.
func (p *infoPanel) layout(canvas *viewer.Canvas) fyne.CanvasObject {
	instructions := widget.NewLabel(
		"• Click a shape to select it\n" +
			"• Ctrl-click to extend the selection\n" +
			"• Drag a selected shape to move it\n" +
			"• Drag a handle to resize\n" +
			"• Drag the background to pan, scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	addPolygon := widget.NewButton("Add Polygon", func() {
		canvas.NewPolygonAt(canvas.Camera().Center)
	})
	addLine := widget.NewButton("Add Line", func() {
		canvas.NewLineAt(canvas.Camera().Center)
	})
	addMarker := widget.NewButton("Add Marker", func() {
		canvas.NewMarkerAt(canvas.Camera().Center)
	})
	deleteSelected := widget.NewButton("Delete Selected", func() {
		for _, id := range canvas.SelectionManager().Selected() {
			canvas.RemoveShape(id)
		}
		canvas.Refresh()
	})
	rebuildIndex := widget.NewButton("Rebuild Index", func() {
		canvas.RebuildIndex()
		canvas.Refresh()
	})
	fitView := widget.NewButton("Fit View", func() {
		canvas.Camera().Fit(canvas.Store().Bounds())
		canvas.CullEngine().Request()
		canvas.Refresh()
	})

	panel := container.NewVBox(
		widget.NewLabel("Layout:"),
		p.sourceLabel,
		widget.NewSeparator(),
		widget.NewLabel("Culling:"),
		p.visibleLabel,
		p.inSceneLabel,
		p.churnLabel,
		p.lodLabel,
		p.elapsedLabel,
		widget.NewSeparator(),
		p.selectionLabel,
		widget.NewSeparator(),
		addPolygon,
		addLine,
		addMarker,
		deleteSelected,
		widget.NewSeparator(),
		rebuildIndex,
		fitView,
		widget.NewSeparator(),
		instructions,
	)

	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(280, 0))

	return container.NewBorder(nil, nil, nil, scroll, canvas)
}
