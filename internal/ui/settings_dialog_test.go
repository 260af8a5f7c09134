package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/simurg/simurg-desktop/internal/config"
)

func TestSettingsDialog_Apply(t *testing.T) {
	app := test.NewApp()
	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), test.NewWindow(nil), nil)
	sd.loadCurrentSettings()

	sd.saveDirEntry.SetText("/data/plots")
	sd.apiURLEntry.SetText(" https://api.example.org ")
	sd.autoRevealChk.SetChecked(true)
	sd.languageSelect.SetSelected("Русский")

	change := sd.apply()

	if !change.SaveDirectory || !change.APIURL || !change.Language {
		t.Errorf("Expected every change reported, got %+v", change)
	}
	if settings.GetSaveDirectory() != "/data/plots" {
		t.Errorf("Unexpected save directory %s", settings.GetSaveDirectory())
	}
	if settings.GetAPIURLOverride() != "https://api.example.org" {
		t.Errorf("Unexpected API URL %q", settings.GetAPIURLOverride())
	}
	if !settings.GetAutoRevealOnSave() {
		t.Error("Expected auto reveal enabled")
	}
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected ru, got %s", settings.GetLanguage())
	}

	// saving again without edits changes nothing
	sd.loadCurrentSettings()
	if change := sd.apply(); change.SaveDirectory || change.APIURL || change.Language {
		t.Errorf("Expected no changes, got %+v", change)
	}
}

func TestSettingsDialog_SystemLanguageLabel(t *testing.T) {
	app := test.NewApp()
	sd := NewSettingsDialog(config.NewSettings(app), NewLocalization(), test.NewWindow(nil), nil)

	if code, ok := sd.languageCodes["System"]; !ok || code != config.DefaultLanguage {
		t.Errorf("Expected localized system entry, got %v", sd.languageCodes)
	}
}
