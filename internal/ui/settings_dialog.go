package ui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/simurg/simurg-desktop/internal/config"
)

// SettingsChange describes what a save changed
type SettingsChange struct {
	SaveDirectory bool
	Language      bool
	APIURL        bool
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func(SettingsChange)

	// UI components
	saveDirEntry   *widget.Entry
	apiURLEntry    *widget.Entry
	autoRevealChk  *widget.Check
	languageSelect *widget.Select
	languageCodes  map[string]string // label -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func(SettingsChange)) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		loc:      loc,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func(SettingsChange)) {
	NewSettingsDialog(settings, loc, window, onSaved).Show()
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.saveDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	saveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.saveDirEntry)

	sd.apiURLEntry = widget.NewEntry()
	sd.apiURLEntry.SetPlaceHolder("https://")

	sd.autoRevealChk = widget.NewCheck(sd.loc.GetText(KeyAutoReveal), nil)

	sd.languageCodes = make(map[string]string)
	labels := make([]string, 0)
	for code, name := range sd.settings.GetLanguageOptions() {
		if code == config.DefaultLanguage {
			name = sd.loc.GetText(KeyLanguageSystem)
		}
		sd.languageCodes[name] = code
		labels = append(labels, name)
	}
	sort.Strings(labels)
	sd.languageSelect = widget.NewSelect(labels, nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.loc.GetText(KeySaveDirectory), saveDirRow),
		widget.NewFormItem(sd.loc.GetText(KeyAPIURLOverride), sd.apiURLEntry),
		widget.NewFormItem(sd.loc.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoRevealChk),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(KeySettings),
		sd.loc.GetText(KeySave),
		sd.loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(500, 300))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.apiURLEntry.SetText(sd.settings.GetAPIURLOverride())
	sd.autoRevealChk.SetChecked(sd.settings.GetAutoRevealOnSave())

	current := sd.settings.GetLanguage()
	for label, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(label)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.saveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	change := sd.apply()
	if sd.onSaved != nil {
		sd.onSaved(change)
	}
}

// apply writes the dialog values to the settings store
func (sd *SettingsDialog) apply() SettingsChange {
	var change SettingsChange

	if dir := strings.TrimSpace(sd.saveDirEntry.Text); dir != "" && dir != sd.settings.GetSaveDirectory() {
		sd.settings.SetSaveDirectory(dir)
		change.SaveDirectory = true
	}

	if apiURL := strings.TrimSpace(sd.apiURLEntry.Text); apiURL != sd.settings.GetAPIURLOverride() {
		sd.settings.SetAPIURLOverride(apiURL)
		change.APIURL = true
	}

	sd.settings.SetAutoRevealOnSave(sd.autoRevealChk.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok && code != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(code)
		change.Language = true
	}

	return change
}
