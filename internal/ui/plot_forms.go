package ui

import (
	"errors"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/simurg/simurg-desktop/internal/form"
	"github.com/simurg/simurg-desktop/internal/model"
)

// validationMessage turns form.ValidationErrors into a localized line naming
// the failed fields. labels maps field names to text keys.
func validationMessage(loc *Localization, err error, labels map[string]string) (string, bool) {
	var verrs form.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", false
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if key, ok := labels[fe.Field]; ok {
			names = append(names, loc.GetText(key))
		} else {
			names = append(names, fe.Field)
		}
	}
	return loc.Format(KeyRequiredFields, map[string]any{"Fields": strings.Join(names, FieldListSeparator)}), true
}

func newEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

func newErrorLabel() *widget.Label {
	label := widget.NewLabel("")
	label.Importance = widget.DangerImportance
	label.Wrapping = fyne.TextWrapWord
	label.Hide()
	return label
}

func showError(label *widget.Label, message string) {
	if message == "" {
		label.SetText("")
		label.Hide()
		return
	}
	label.SetText(message)
	label.Show()
}

// SinglePlotForm collects the date and time of a single plot
type SinglePlotForm struct {
	loc        *Localization
	container  *fyne.Container
	DateEntry  *widget.Entry
	TimeEntry  *widget.Entry
	NameEntry  *widget.Entry
	errorLabel *widget.Label
	submitBtn  *widget.Button
	onSubmit   func(model.SinglePlotInput)
}

var singlePlotLabels = map[string]string{
	"date":     KeyDate,
	"time":     KeyTime,
	"fileName": KeyFileName,
}

// NewSinglePlotForm builds the single plot form
func NewSinglePlotForm(loc *Localization, onSubmit func(model.SinglePlotInput)) *SinglePlotForm {
	f := &SinglePlotForm{
		loc:        loc,
		DateEntry:  newEntry(loc.GetText(KeyDatePlaceholder)),
		TimeEntry:  newEntry(loc.GetText(KeyTimePlaceholder)),
		NameEntry:  newEntry(loc.GetText(KeyFileNameHint)),
		errorLabel: newErrorLabel(),
		onSubmit:   onSubmit,
	}
	f.submitBtn = widget.NewButton(loc.GetText(KeySubmit), f.Submit)
	f.submitBtn.Importance = widget.HighImportance

	fields := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyDate)+" *", f.DateEntry),
		widget.NewFormItem(loc.GetText(KeyTime)+" *", f.TimeEntry),
		widget.NewFormItem(loc.GetText(KeyFileName), f.NameEntry),
	)
	title := widget.NewLabelWithStyle(loc.GetText(KeySinglePlotTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	f.container = container.NewVBox(title, fields, f.errorLabel, f.submitBtn)
	return f
}

// Container returns the root object
func (f *SinglePlotForm) Container() fyne.CanvasObject {
	return f.container
}

// SubmitButton returns the submit button
func (f *SinglePlotForm) SubmitButton() *widget.Button {
	return f.submitBtn
}

// ErrorText returns the validation message currently shown
func (f *SinglePlotForm) ErrorText() string {
	return f.errorLabel.Text
}

// Submit validates the fields and emits the input
func (f *SinglePlotForm) Submit() {
	input, err := form.SinglePlot{
		Date:     f.DateEntry.Text,
		Time:     f.TimeEntry.Text,
		FileName: f.NameEntry.Text,
	}.Input()
	if err != nil {
		msg, ok := validationMessage(f.loc, err, singlePlotLabels)
		if !ok {
			msg = err.Error()
		}
		showError(f.errorLabel, msg)
		return
	}
	showError(f.errorLabel, "")
	if f.onSubmit != nil {
		f.onSubmit(input)
	}
}

// ArchiveAnimationForm collects the time range and interval of an archive job
type ArchiveAnimationForm struct {
	loc            *Localization
	container      *fyne.Container
	StartDateEntry *widget.Entry
	StartTimeEntry *widget.Entry
	EndTimeEntry   *widget.Entry
	IntervalEntry  *widget.Entry
	NameEntry      *widget.Entry
	errorLabel     *widget.Label
	submitBtn      *widget.Button
	onSubmit       func(model.ArchiveAnimationInput)
}

var archiveLabels = map[string]string{
	"startDate":       KeyStartDate,
	"startTime":       KeyStartTime,
	"endTime":         KeyEndTime,
	"intervalSeconds": KeyIntervalSeconds,
	"fileName":        KeyFileName,
}

// NewArchiveAnimationForm builds the archive/animation form
func NewArchiveAnimationForm(loc *Localization, onSubmit func(model.ArchiveAnimationInput)) *ArchiveAnimationForm {
	f := &ArchiveAnimationForm{
		loc:            loc,
		StartDateEntry: newEntry(loc.GetText(KeyDatePlaceholder)),
		StartTimeEntry: newEntry(loc.GetText(KeyTimePlaceholder)),
		EndTimeEntry:   newEntry(loc.GetText(KeyTimePlaceholder)),
		IntervalEntry:  newEntry(loc.GetText(KeyIntervalHint)),
		NameEntry:      newEntry(loc.GetText(KeyFileNameHint)),
		errorLabel:     newErrorLabel(),
		onSubmit:       onSubmit,
	}
	f.submitBtn = widget.NewButton(loc.GetText(KeySubmit), f.Submit)
	f.submitBtn.Importance = widget.HighImportance

	fields := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyStartDate)+" *", f.StartDateEntry),
		widget.NewFormItem(loc.GetText(KeyStartTime)+" *", f.StartTimeEntry),
		widget.NewFormItem(loc.GetText(KeyEndTime)+" *", f.EndTimeEntry),
		widget.NewFormItem(loc.GetText(KeyIntervalSeconds)+" *", f.IntervalEntry),
		widget.NewFormItem(loc.GetText(KeyFileName), f.NameEntry),
	)
	title := widget.NewLabelWithStyle(loc.GetText(KeyArchiveTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	f.container = container.NewVBox(title, fields, f.errorLabel, f.submitBtn)
	return f
}

// Container returns the root object
func (f *ArchiveAnimationForm) Container() fyne.CanvasObject {
	return f.container
}

// SubmitButton returns the submit button
func (f *ArchiveAnimationForm) SubmitButton() *widget.Button {
	return f.submitBtn
}

// ErrorText returns the validation message currently shown
func (f *ArchiveAnimationForm) ErrorText() string {
	return f.errorLabel.Text
}

// Submit validates the fields and emits the input. A non-numeric interval
// counts as missing.
func (f *ArchiveAnimationForm) Submit() {
	interval, _ := strconv.Atoi(strings.TrimSpace(f.IntervalEntry.Text))

	input, err := form.ArchiveAnimation{
		StartDate:       f.StartDateEntry.Text,
		StartTime:       f.StartTimeEntry.Text,
		EndTime:         f.EndTimeEntry.Text,
		IntervalSeconds: interval,
		FileName:        f.NameEntry.Text,
	}.Input()
	if err != nil {
		msg, ok := validationMessage(f.loc, err, archiveLabels)
		if !ok {
			msg = err.Error()
		}
		showError(f.errorLabel, msg)
		return
	}
	showError(f.errorLabel, "")
	if f.onSubmit != nil {
		f.onSubmit(input)
	}
}
