package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/simurg/simurg-desktop/internal/model"
)

// TypeSelection lets the user pick the job form
type TypeSelection struct {
	container *fyne.Container
	selector  *widget.Select
	forms     map[string]model.FormType
}

// NewTypeSelection builds the selector; it emits FormNone when cleared
func NewTypeSelection(loc *Localization, onSelect func(model.FormType)) *TypeSelection {
	ts := &TypeSelection{
		forms: map[string]model.FormType{
			loc.GetText(KeyTypeSingle):  model.FormSinglePlot,
			loc.GetText(KeyTypeArchive): model.FormArchiveAnimation,
		},
	}

	ts.selector = widget.NewSelect([]string{loc.GetText(KeyTypeSingle), loc.GetText(KeyTypeArchive)}, func(label string) {
		if onSelect == nil {
			return
		}
		form, ok := ts.forms[label]
		if !ok {
			form = model.FormNone
		}
		onSelect(form)
	})
	ts.selector.PlaceHolder = loc.GetText(KeyChooseType)

	title := widget.NewLabelWithStyle(loc.GetText(KeySelectPlotType), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ts.container = container.NewVBox(title, widget.NewForm(widget.NewFormItem(loc.GetText(KeyPlotType), ts.selector)))
	return ts
}

// Container returns the root object
func (ts *TypeSelection) Container() fyne.CanvasObject {
	return ts.container
}

// Selector returns the select widget
func (ts *TypeSelection) Selector() *widget.Select {
	return ts.selector
}
