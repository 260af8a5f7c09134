package ui

import (
	"context"
	"encoding/json"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/coords"
	"github.com/simurg/simurg-desktop/internal/form"
	"github.com/simurg/simurg-desktop/internal/model"
)

// Calculator runs a coordinate calculation
type Calculator interface {
	Calculate(ctx context.Context, f form.Coordinates) (model.CoordinatesResult, error)
}

// CoordinatesView is the obs/nav upload form with its result line
type CoordinatesView struct {
	loc    *Localization
	window fyne.Window
	calc   Calculator
	ctx    context.Context
	log    logrus.FieldLogger
	notify func(title, message string)

	root        *fyne.Container
	obsLabel    *widget.Label
	navLabel    *widget.Label
	obsBtn      *widget.Button
	navBtn      *widget.Button
	obsError    *widget.Label
	navError    *widget.Label
	submitBtn   *widget.Button
	spinner     *widget.ProgressBarInfinite
	resultLabel *widget.Label

	obsPath string
	navPath string
	result  *model.CoordinatesResult
	pending bool
}

// NewCoordinatesView builds the coordinates tab. notify shows an error to the user.
func NewCoordinatesView(ctx context.Context, loc *Localization, window fyne.Window, calc Calculator,
	log logrus.FieldLogger, notify func(title, message string)) *CoordinatesView {
	v := &CoordinatesView{
		loc:    loc,
		window: window,
		calc:   calc,
		ctx:    ctx,
		log:    log,
		notify: notify,
		root:   container.NewVBox(),
	}
	v.build()
	return v
}

// Container returns the root object
func (v *CoordinatesView) Container() fyne.CanvasObject {
	return v.root
}

// Refresh rebuilds the view with the current language
func (v *CoordinatesView) Refresh() {
	v.build()
}

func (v *CoordinatesView) build() {
	v.obsLabel = widget.NewLabel("")
	v.navLabel = widget.NewLabel("")
	v.obsBtn = widget.NewButton(v.loc.GetText(KeyUploadFile), func() { v.pickFile(form.ObsExtension, v.SetObsFile) })
	v.navBtn = widget.NewButton(v.loc.GetText(KeyUploadFile), func() { v.pickFile(form.NavExtension, v.SetNavFile) })
	v.obsError = newErrorLabel()
	v.navError = newErrorLabel()
	v.submitBtn = widget.NewButton(v.loc.GetText(KeyCalculate), v.Submit)
	v.submitBtn.Importance = widget.HighImportance
	v.spinner = widget.NewProgressBarInfinite()
	v.spinner.Hide()
	v.resultLabel = widget.NewLabel("")
	v.resultLabel.Wrapping = fyne.TextWrapWord

	fields := widget.NewForm(
		widget.NewFormItem(v.loc.GetText(KeyObsFile)+" *", container.NewBorder(nil, v.obsError, nil, v.obsBtn, v.obsLabel)),
		widget.NewFormItem(v.loc.GetText(KeyNavFile)+" *", container.NewBorder(nil, v.navError, nil, v.navBtn, v.navLabel)),
	)

	v.root.Objects = []fyne.CanvasObject{fields, v.submitBtn, v.spinner, v.resultLabel}
	v.renderFiles()
	v.renderResult()
	v.setPending(v.pending)
	v.root.Refresh()
}

func (v *CoordinatesView) pickFile(ext string, set func(string)) {
	picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		set(reader.URI().Path())
	}, v.window)
	picker.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	picker.Show()
}

// SetObsFile sets the observation file path
func (v *CoordinatesView) SetObsFile(path string) {
	v.obsPath = path
	showError(v.obsError, "")
	v.renderFiles()
}

// SetNavFile sets the navigation file path
func (v *CoordinatesView) SetNavFile(path string) {
	v.navPath = path
	showError(v.navError, "")
	v.renderFiles()
}

func (v *CoordinatesView) renderFiles() {
	v.obsLabel.SetText(v.describe(v.obsPath))
	v.navLabel.SetText(v.describe(v.navPath))
}

func (v *CoordinatesView) describe(path string) string {
	if path == "" {
		return v.loc.GetText(KeyUploadFile)
	}
	return coords.DescribeFile(path)
}

// Submit validates the form and starts the calculation in the background
func (v *CoordinatesView) Submit() {
	if v.pending {
		return
	}

	f := form.Coordinates{ObsFile: v.obsPath, NavFile: v.navPath}
	if err := f.Validate(); err != nil {
		v.showValidation(err)
		return
	}
	showError(v.obsError, "")
	showError(v.navError, "")

	v.setPending(true)
	go v.calculate(f)
}

func (v *CoordinatesView) showValidation(err error) {
	var verrs form.ValidationErrors
	if !errors.As(err, &verrs) {
		showError(v.obsError, err.Error())
		return
	}
	if verrs.Has("obsFile") {
		showError(v.obsError, v.loc.GetText(KeyObsRequired))
	}
	if verrs.Has("navFile") {
		showError(v.navError, v.loc.GetText(KeyNavRequired))
	}
}

// calculate runs off the UI goroutine; the previous result stays on failure
func (v *CoordinatesView) calculate(f form.Coordinates) {
	result, err := v.calc.Calculate(v.ctx, f)

	fyne.Do(func() {
		v.setPending(false)
		if err != nil {
			v.log.WithError(err).Warn("Coordinate calculation failed")
			if v.notify != nil {
				v.notify(v.loc.GetText(KeyErrorTitle), v.loc.GetText(KeyCalculationFailed))
			}
			return
		}
		v.result = &result
		v.renderResult()
	})
}

func (v *CoordinatesView) setPending(pending bool) {
	v.pending = pending
	if pending {
		v.obsBtn.Disable()
		v.navBtn.Disable()
		v.submitBtn.Disable()
		v.spinner.Show()
		return
	}
	v.obsBtn.Enable()
	v.navBtn.Enable()
	v.submitBtn.Enable()
	v.spinner.Hide()
}

func (v *CoordinatesView) renderResult() {
	if v.result == nil {
		v.resultLabel.SetText("")
		v.resultLabel.Hide()
		return
	}
	data, err := json.Marshal(v.result)
	if err != nil {
		v.resultLabel.SetText(err.Error())
	} else {
		v.resultLabel.SetText(string(data))
	}
	v.resultLabel.Show()
}

// ResultText returns the rendered result line
func (v *CoordinatesView) ResultText() string {
	return v.resultLabel.Text
}

// Pending reports whether a calculation is running
func (v *CoordinatesView) Pending() bool {
	return v.pending
}
