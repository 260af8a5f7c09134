package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/simurg/simurg-desktop/internal/model"
)

// Layout sizing (ArtifactRow)
const (
	StatusLabelWidth float32 = 96
	SizeLabelWidth   float32 = 72
	RowMinWidth      float32 = 400
)

// ArtifactRow is a compact row for one saved artifact
type ArtifactRow struct {
	widget.BaseWidget

	task         model.ArtifactTask
	localization *Localization

	// UI components
	nameLabel   *widget.Label
	statusLabel *widget.Label
	sizeLabel   *widget.Label

	// Action buttons
	revealBtn *widget.Button // reveal in file manager
	openBtn   *widget.Button // open with default app
	copyBtn   *widget.Button

	// Callbacks
	onReveal   func(filePath string)
	onOpen     func(filePath string)
	onCopyPath func(filePath string)
}

// NewArtifactRow creates a new artifact row widget
func NewArtifactRow(task model.ArtifactTask, localization *Localization) *ArtifactRow {
	ar := &ArtifactRow{
		task:         task,
		localization: localization,
	}
	ar.ExtendBaseWidget(ar)
	ar.createUI()
	ar.updateFromTask()
	return ar
}

// SetCallbacks sets the action callbacks
func (ar *ArtifactRow) SetCallbacks(onReveal, onOpen, onCopyPath func(filePath string)) {
	ar.onReveal = onReveal
	ar.onOpen = onOpen
	ar.onCopyPath = onCopyPath
}

// UpdateTask updates the row with new task data
func (ar *ArtifactRow) UpdateTask(task model.ArtifactTask) {
	ar.task = task
	ar.updateFromTask()
	ar.Refresh()
}

// createUI creates the UI components
func (ar *ArtifactRow) createUI() {
	ar.nameLabel = widget.NewLabel("")
	ar.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	ar.nameLabel.Truncation = fyne.TextTruncateEllipsis

	ar.statusLabel = widget.NewLabel("")
	ar.statusLabel.Alignment = fyne.TextAlignTrailing
	ar.sizeLabel = widget.NewLabel("")
	ar.sizeLabel.Alignment = fyne.TextAlignTrailing
	ar.sizeLabel.TextStyle = fyne.TextStyle{Monospace: true}

	withPath := func(action func() func(string)) func() {
		return func() {
			fn := action()
			if fn == nil {
				return
			}
			if ar.task.OutputPath == "" {
				widget.ShowPopUp(widget.NewLabel(ar.localization.GetText(KeyFilePathMissing)),
					fyne.CurrentApp().Driver().CanvasForObject(ar))
				return
			}
			fn(ar.task.OutputPath)
		}
	}

	ar.revealBtn = widget.NewButton(ar.localization.GetText(KeyReveal), withPath(func() func(string) { return ar.onReveal }))
	ar.openBtn = widget.NewButton(ar.localization.GetText(KeyOpen), withPath(func() func(string) { return ar.onOpen }))
	ar.copyBtn = widget.NewButton(ar.localization.GetText(KeyCopyPath), withPath(func() func(string) { return ar.onCopyPath }))
}

// updateFromTask updates UI components based on task state
func (ar *ArtifactRow) updateFromTask() {
	ar.nameLabel.SetText(ar.task.DisplayName())
	ar.statusLabel.SetText(ar.localization.GetText(statusKey(ar.task.Status)))

	if ar.task.Status == model.ArtifactCompleted {
		ar.sizeLabel.SetText(humanize.Bytes(uint64(ar.task.Size)))
		ar.revealBtn.Enable()
		ar.openBtn.Enable()
		ar.copyBtn.Enable()
		return
	}

	ar.sizeLabel.SetText(DashPlaceholder)
	ar.revealBtn.Disable()
	ar.openBtn.Disable()
	ar.copyBtn.Disable()
}

func statusKey(status model.ArtifactStatus) string {
	switch status {
	case model.ArtifactDownloading:
		return KeyStatusDownloading
	case model.ArtifactCompleted:
		return KeyStatusCompleted
	case model.ArtifactError:
		return KeyStatusError
	default:
		return KeyStatusPending
	}
}

// CreateRenderer creates the widget renderer
func (ar *ArtifactRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	info := container.NewHBox(
		fixedWidth(StatusLabelWidth, ar.statusLabel),
		fixedWidth(SizeLabelWidth, ar.sizeLabel),
	)
	actions := container.NewHBox(ar.revealBtn, ar.openBtn, ar.copyBtn)
	right := container.NewBorder(nil, nil, nil, actions, info)

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, right, ar.nameLabel),
		widget.NewSeparator(),
	)
	return widget.NewSimpleRenderer(content)
}
