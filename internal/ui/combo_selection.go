package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/simurg/simurg-desktop/internal/model"
)

// ComboSelection shows one card per combo and emits the chosen one
type ComboSelection struct {
	container *fyne.Container
	buttons   map[string]*widget.Button
}

// NewComboSelection builds the combo grid. It keeps no selection state.
func NewComboSelection(loc *Localization, combos []model.Combo, assetsDir string, onSelect func(model.Combo)) *ComboSelection {
	cs := &ComboSelection{buttons: make(map[string]*widget.Button, len(combos))}

	cards := make([]fyne.CanvasObject, 0, len(combos))
	for _, combo := range combos {
		selected := combo
		image := canvas.NewImageFromResource(ComboImage(assetsDir, combo.Image))
		image.FillMode = canvas.ImageFillContain
		image.SetMinSize(fyne.NewSize(ComboCardWidth, ComboImageHeight))

		btn := widget.NewButton(loc.GetText(KeySelect), func() {
			if onSelect != nil {
				onSelect(selected)
			}
		})
		btn.Importance = widget.HighImportance
		cs.buttons[combo.ID] = btn

		cards = append(cards, widget.NewCard(combo.Name, "", container.NewBorder(nil, btn, nil, nil, image)))
	}

	title := widget.NewLabelWithStyle(loc.GetText(KeyComboSelection), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	grid := container.NewGridWrap(fyne.NewSize(ComboCardWidth, ComboCardHeight), cards...)
	cs.container = container.NewVBox(title, container.NewCenter(grid))
	return cs
}

// Container returns the root object
func (cs *ComboSelection) Container() fyne.CanvasObject {
	return cs.container
}

// Button returns the select button of a combo
func (cs *ComboSelection) Button(comboID string) *widget.Button {
	return cs.buttons[comboID]
}
