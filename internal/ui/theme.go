package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette
var (
	colorPrimary = color.NRGBA{R: 0, G: 121, B: 140, A: 255}
	colorSuccess = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	colorError   = color.NRGBA{R: 198, G: 40, B: 40, A: 255}
	colorWarning = color.NRGBA{R: 245, G: 166, B: 35, A: 255}
)

// AppTheme is a compact theme with the SIMURG palette. It delegates to the
// default theme for anything it does not override.
type AppTheme struct {
	base fyne.Theme
}

// NewAppTheme creates the application theme
func NewAppTheme() fyne.Theme {
	return &AppTheme{base: theme.DefaultTheme()}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorPrimary
	case theme.ColorNameSuccess:
		return colorSuccess
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameWarning:
		return colorWarning
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNameInputRadius:
		return 3
	}
	return t.base.Size(name)
}
