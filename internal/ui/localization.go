package ui

import (
	"embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.json
var translationFS embed.FS

// Supported languages
const (
	LangSystem  = "system"
	LangEnglish = "en"
	LangRussian = "ru"
)

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyLanguageSystem    = "language_system"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyClose             = "close"
	KeyTabCoordinates    = "tab_coordinates"
	KeyTabPlotter        = "tab_plotter"
	KeySaveDirectory     = "save_directory"
	KeyAPIURLOverride    = "api_url_override"
	KeyAutoReveal        = "auto_reveal"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyGraphGenerator    = "graph_generator"
	KeyComboSelection    = "combo_selection"
	KeySelect            = "select"
	KeySelectPlotType    = "select_plot_type"
	KeyPlotType          = "plot_type"
	KeyChooseType        = "choose_type"
	KeyTypeSingle        = "type_single"
	KeyTypeArchive       = "type_archive"
	KeySinglePlotTitle   = "single_plot_title"
	KeyArchiveTitle      = "archive_title"
	KeyDate              = "date"
	KeyDatePlaceholder   = "date_placeholder"
	KeyTime              = "time"
	KeyTimePlaceholder   = "time_placeholder"
	KeyStartDate         = "start_date"
	KeyStartTime         = "start_time"
	KeyEndTime           = "end_time"
	KeyIntervalSeconds   = "interval_seconds"
	KeyIntervalHint      = "interval_placeholder"
	KeyFileName          = "file_name"
	KeyFileNameHint      = "file_name_placeholder"
	KeySubmit            = "submit"
	KeyRequiredFields    = "required_fields"
	KeyProgress          = "progress"
	KeyResult            = "result"
	KeyFinalRequest      = "final_request"
	KeyReset             = "reset"
	KeyDownloadResult    = "download_result"
	KeyDownloadImages    = "download_images"
	KeyDownloadAnimation = "download_animation"
	KeyArtifactSaved     = "artifact_saved"
	KeyObsFile           = "obs_file"
	KeyNavFile           = "nav_file"
	KeyUploadFile        = "upload_file"
	KeyObsRequired       = "obs_required"
	KeyNavRequired       = "nav_required"
	KeyCalculate         = "calculate"
	KeyCalculating       = "calculating"
	KeyErrorTitle        = "error_title"
	KeyCalculationFailed = "calculation_failed"
	KeySavedFiles        = "saved_files"
	KeyCopyPath          = "copy_path"
	KeyPathCopied        = "path_copied"
	KeyStatusPending     = "status_pending"
	KeyStatusDownloading = "status_downloading"
	KeyStatusCompleted   = "status_completed"
	KeyStatusError       = "status_error"
	KeyFilePathMissing   = "file_path_unavailable"
	KeyClearFinished     = "clear_finished"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	bundle          *i18n.Bundle
	localizer       *i18n.Localizer
	currentLanguage string
	systemLanguage  func() (string, error)
}

// NewLocalization creates a new localization manager with English selected
func NewLocalization() *Localization {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, lang := range []string{LangEnglish, LangRussian} {
		path := "translations/" + lang + ".json"
		data, err := translationFS.ReadFile(path)
		if err != nil {
			panic(err)
		}
		bundle.MustParseMessageFileBytes(data, path)
	}

	l := &Localization{
		bundle:         bundle,
		systemLanguage: locale.GetLanguage,
	}
	l.SetLanguage(LangEnglish)
	return l
}

// SetLanguage sets the current language. "system" resolves through the OS
// locale; unsupported languages fall back to English.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = l.detectSystemLanguage()
	}
	if _, ok := l.GetAvailableLanguages()[lang]; !ok {
		lang = LangEnglish
	}

	l.mu.Lock()
	l.currentLanguage = lang
	l.localizer = i18n.NewLocalizer(l.bundle, lang, LangEnglish)
	l.mu.Unlock()
}

func (l *Localization) detectSystemLanguage() string {
	lang, err := l.systemLanguage()
	if err != nil || lang == "" {
		return LangEnglish
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return LangEnglish
	}
	base, _ := tag.Base()
	return strings.ToLower(base.String())
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	return l.Format(key, nil)
}

// Format returns localized text with template data filled in. Unknown keys
// return the key itself.
func (l *Localization) Format(key string, data map[string]any) string {
	l.mu.RLock()
	localizer := l.localizer
	l.mu.RUnlock()

	text, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || text == "" {
		return key
	}
	return text
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEnglish: "English",
		LangRussian: "Русский",
	}
}
