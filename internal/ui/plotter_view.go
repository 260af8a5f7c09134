package ui

import (
	"context"
	"encoding/json"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/model"
	"github.com/simurg/simurg-desktop/internal/session"
)

// Dashboard steps
const (
	stepCombos  = "combos"
	stepTypes   = "types"
	stepSingle  = "single"
	stepArchive = "archive"
)

// Dashboard is the part of the session controller the plotter view drives
type Dashboard interface {
	State() session.State
	OnChange(func(session.State))
	SelectCombo(combo model.Combo)
	SelectType(form model.FormType) error
	Submit(ctx context.Context, input model.FormInput) (model.GenerateResponse, error)
	Download(ctx context.Context, kind model.DownloadKind) (model.ArtifactTask, error)
	Reset()
}

// PlotterView renders the dashboard state: the current selection step, the
// progress bar and the result section with reset and download buttons
type PlotterView struct {
	loc       *Localization
	dashboard Dashboard
	combos    []model.Combo
	assetsDir string
	ctx       context.Context
	log       logrus.FieldLogger

	root         *fyne.Container
	stepHolder   *fyne.Container
	progressBox  *fyne.Container
	progressBar  *widget.ProgressBar
	resultBox    *fyne.Container
	resultText   *widget.Label
	requestText  *widget.Label
	resetBtn     *widget.Button
	downloadBox  *fyne.Container
	downloadBtns map[model.DownloadKind]*widget.Button

	step        string
	comboView   *ComboSelection
	typeView    *TypeSelection
	singleForm  *SinglePlotForm
	archiveForm *ArchiveAnimationForm
}

// NewPlotterView builds the plotter tab and subscribes to dashboard changes
func NewPlotterView(ctx context.Context, loc *Localization, dashboard Dashboard, combos []model.Combo,
	assetsDir string, log logrus.FieldLogger) *PlotterView {
	v := &PlotterView{
		loc:       loc,
		dashboard: dashboard,
		combos:    combos,
		assetsDir: assetsDir,
		ctx:       ctx,
		log:       log,
		root:      container.NewVBox(),
	}
	v.build()

	dashboard.OnChange(func(state session.State) {
		fyne.Do(func() { v.render(state) })
	})
	return v
}

// Container returns the root object
func (v *PlotterView) Container() fyne.CanvasObject {
	return container.NewVScroll(v.root)
}

// Refresh rebuilds the view with the current language
func (v *PlotterView) Refresh() {
	v.build()
}

func (v *PlotterView) build() {
	title := widget.NewLabelWithStyle(v.loc.GetText(KeyGraphGenerator), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	v.stepHolder = container.NewVBox()
	v.step = ""

	v.progressBar = widget.NewProgressBar()
	v.progressBox = container.NewVBox(widget.NewLabelWithStyle(v.loc.GetText(KeyProgress), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), v.progressBar)

	v.resultText = widget.NewLabel("")
	v.resultText.TextStyle = fyne.TextStyle{Monospace: true}
	v.requestText = widget.NewLabel("")
	v.requestText.TextStyle = fyne.TextStyle{Monospace: true}
	v.resetBtn = widget.NewButton(v.loc.GetText(KeyReset), v.dashboard.Reset)

	v.downloadBtns = map[model.DownloadKind]*widget.Button{
		model.DownloadResult:    widget.NewButton(v.loc.GetText(KeyDownloadResult), func() { v.download(model.DownloadResult) }),
		model.DownloadImages:    widget.NewButton(v.loc.GetText(KeyDownloadImages), func() { v.download(model.DownloadImages) }),
		model.DownloadAnimation: widget.NewButton(v.loc.GetText(KeyDownloadAnimation), func() { v.download(model.DownloadAnimation) }),
	}
	v.downloadBox = container.NewHBox()

	v.resultBox = container.NewVBox(
		widget.NewLabelWithStyle(v.loc.GetText(KeyResult), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		v.resultText,
		widget.NewLabelWithStyle(v.loc.GetText(KeyFinalRequest), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		v.requestText,
		container.NewHBox(v.resetBtn, v.downloadBox),
	)

	v.root.Objects = []fyne.CanvasObject{title, v.stepHolder, v.progressBox, v.resultBox}
	v.render(v.dashboard.State())
	v.root.Refresh()
}

// render must run on the UI goroutine
func (v *PlotterView) render(state session.State) {
	v.renderStep(state)

	if state.HasProgress {
		v.progressBar.SetValue(state.Progress.Fraction())
		v.progressBox.Show()
	} else {
		v.progressBox.Hide()
	}

	if state.Result == nil {
		v.resultBox.Hide()
		return
	}
	v.resultText.SetText(indentJSON(state.Result))
	v.requestText.SetText(indentJSON(state.Request))

	v.downloadBox.Objects = nil
	for _, kind := range state.Downloads() {
		v.downloadBox.Objects = append(v.downloadBox.Objects, v.downloadBtns[kind])
	}
	v.downloadBox.Refresh()
	v.resultBox.Show()
}

// renderStep swaps the step widgets only when the step changes so typed
// form values survive progress updates
func (v *PlotterView) renderStep(state session.State) {
	step := stepFor(state)
	if step == v.step {
		return
	}
	v.step = step

	var obj fyne.CanvasObject
	switch step {
	case stepCombos:
		v.comboView = NewComboSelection(v.loc, v.combos, v.assetsDir, v.dashboard.SelectCombo)
		obj = v.comboView.Container()
	case stepTypes:
		v.typeView = NewTypeSelection(v.loc, v.selectType)
		obj = v.typeView.Container()
	case stepSingle:
		v.singleForm = NewSinglePlotForm(v.loc, func(in model.SinglePlotInput) { v.submit(in) })
		obj = v.singleForm.Container()
	case stepArchive:
		v.archiveForm = NewArchiveAnimationForm(v.loc, func(in model.ArchiveAnimationInput) { v.submit(in) })
		obj = v.archiveForm.Container()
	}
	v.stepHolder.Objects = []fyne.CanvasObject{obj}
	v.stepHolder.Refresh()
}

func stepFor(state session.State) string {
	switch {
	case state.ShowComboSelection():
		return stepCombos
	case state.Form == model.FormSinglePlot:
		return stepSingle
	case state.Form == model.FormArchiveAnimation:
		return stepArchive
	default:
		return stepTypes
	}
}

func (v *PlotterView) selectType(form model.FormType) {
	if err := v.dashboard.SelectType(form); err != nil {
		v.log.WithError(err).Warn("Type selection ignored")
	}
}

// submit creates the job in the background; failures are only logged
func (v *PlotterView) submit(input model.FormInput) {
	go func() {
		if _, err := v.dashboard.Submit(v.ctx, input); err != nil {
			v.log.WithError(err).WithField("form", input.FormType()).Warn("Submit failed")
		}
	}()
}

// download fetches an artifact in the background; failures are only logged
func (v *PlotterView) download(kind model.DownloadKind) {
	go func() {
		if _, err := v.dashboard.Download(v.ctx, kind); err != nil {
			v.log.WithError(err).WithField("kind", kind).Warn("Download failed")
		}
	}()
}

// DownloadButtons returns the download buttons currently shown
func (v *PlotterView) DownloadButtons() []*widget.Button {
	buttons := make([]*widget.Button, 0, len(v.downloadBox.Objects))
	for _, obj := range v.downloadBox.Objects {
		if btn, ok := obj.(*widget.Button); ok {
			buttons = append(buttons, btn)
		}
	}
	return buttons
}

// Step returns the current step name
func (v *PlotterView) Step() string {
	return v.step
}

func indentJSON(value any) string {
	data, err := json.MarshalIndent(value, "", JSONIndent)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
