package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "simurg.png"
)

// LoadLogoResource loads the logo from the assets directory
func LoadLogoResource(assetsDir string) (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(filepath.Join(assetsDir, AppIcon))
}

// ComboImage loads a combo preview image from the assets directory. Missing
// images fall back to a theme icon.
func ComboImage(assetsDir, image string) fyne.Resource {
	if image == "" || assetsDir == "" {
		return theme.MediaPhotoIcon()
	}
	res, err := fyne.LoadResourceFromPath(filepath.Join(assetsDir, filepath.Base(image)))
	if err != nil {
		return theme.MediaPhotoIcon()
	}
	return res
}
