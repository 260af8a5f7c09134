package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/simurg/simurg-desktop/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySaveDir        = "save_directory"
	KeyLanguage       = "app_language"
	KeyAutoRevealSave = "auto_reveal_on_save"
	KeyAPIURLOverride = "api_url_override"
)

// Default values
const (
	DefaultLanguage       = "system"
	DefaultAutoRevealSave = false
	fallbackSaveDir       = "/tmp/simurg"
)

// Settings manages per-user application preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSaveDirectory returns the directory downloaded artifacts are saved to
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = fallbackSaveDir
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the save directory
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language; unknown codes fall back to system
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnSave returns whether saved artifacts are revealed in the file manager
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealSave, DefaultAutoRevealSave)
}

// SetAutoRevealOnSave sets whether saved artifacts are revealed in the file manager
func (s *Settings) SetAutoRevealOnSave(reveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealSave, reveal)
}

// GetAPIURLOverride returns the user supplied API URL, empty when unset
func (s *Settings) GetAPIURLOverride() string {
	return strings.TrimSpace(s.app.Preferences().String(KeyAPIURLOverride))
}

// SetAPIURLOverride stores an API URL that takes precedence over the environment
func (s *Settings) SetAPIURLOverride(apiURL string) {
	s.app.Preferences().SetString(KeyAPIURLOverride, strings.TrimSpace(apiURL))
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
