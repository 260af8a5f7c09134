package ui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/config"
	"github.com/simurg/simurg-desktop/internal/download"
	"github.com/simurg/simurg-desktop/internal/model"
	"github.com/simurg/simurg-desktop/internal/platform"
)

// Services are the backends the window drives
type Services struct {
	Dashboard   Dashboard
	Coordinates Calculator
	Downloads   download.Downloader
	Combos      []model.Combo
	AssetsDir   string
	Logger      logrus.FieldLogger
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	services     Services
	log          logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc

	tabs        *container.AppTabs
	coordinates *CoordinatesView
	plotter     *PlotterView

	// Saved artifacts
	artifactList  *widget.List
	artifacts     []model.ArtifactTask
	artifactMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	log := services.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		services:     services,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.coordinates = NewCoordinatesView(ctx, localization, window, services.Coordinates, log, ui.showError)
	ui.plotter = NewPlotterView(ctx, localization, services.Dashboard, services.Combos, services.AssetsDir, log)
	if services.Downloads != nil {
		services.Downloads.SetUpdateCallback(ui.onArtifactUpdate)
	}

	ui.setupUI()
	return ui
}

// Close cancels in-flight requests started from the window
func (ui *RootUI) Close() {
	ui.cancel()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(ui.services.AssetsDir); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, settingsBtn)
	}
	title := widget.NewLabelWithStyle(ui.localization.GetText(KeyAppTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	topPanel := container.NewBorder(nil, nil, left, nil, title)

	// Notification panel under the top bar (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	closeBtn := widget.NewButton(IconClose, ui.hideNotification)
	closeBtn.Importance = widget.LowImportance
	ui.notificationContainer = container.NewBorder(nil, nil, nil, closeBtn, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.artifactList = widget.NewList(
		func() int {
			ui.artifactMutex.Lock()
			defer ui.artifactMutex.Unlock()
			return len(ui.artifacts)
		},
		func() fyne.CanvasObject {
			row := NewArtifactRow(model.ArtifactTask{}, ui.localization)
			row.SetCallbacks(ui.onRevealFile, ui.onOpenFile, ui.onCopyPath)
			return row
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.artifactMutex.Lock()
			if id >= len(ui.artifacts) {
				ui.artifactMutex.Unlock()
				return
			}
			task := ui.artifacts[id]
			ui.artifactMutex.Unlock()
			if row, ok := obj.(*ArtifactRow); ok {
				row.UpdateTask(task)
			}
		},
	)

	clearBtn := widget.NewButton(ui.localization.GetText(KeyClearFinished), ui.onClearArtifacts)
	clearBtn.Importance = widget.LowImportance
	savedHeader := container.NewBorder(nil, nil,
		widget.NewLabelWithStyle(ui.localization.GetText(KeySavedFiles), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clearBtn)
	savedPanel := container.NewBorder(savedHeader, nil, nil, nil, ui.artifactList)

	plotterTab := container.NewVSplit(ui.plotter.Container(), savedPanel)
	plotterTab.SetOffset(0.75)

	ui.tabs = container.NewAppTabs(
		container.NewTabItem(ui.localization.GetText(KeyTabCoordinates), container.NewPadded(ui.coordinates.Container())),
		container.NewTabItem(ui.localization.GetText(KeyTabPlotter), plotterTab),
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer), // top
		nil,     // bottom
		nil,     // left
		nil,     // right
		ui.tabs, // center
	)
	ui.window.SetContent(content)
	ui.log.Debug("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	systemItem := fyne.NewMenuItem(ui.localization.GetText(KeyLanguageSystem), func() {
		ui.onLanguageChange(LangSystem)
	})
	systemItem.Checked = ui.settings.GetLanguage() == LangSystem
	languageMenu.Items = append(languageMenu.Items, systemItem)

	for _, code := range []string{LangEnglish, LangRussian} {
		langCode := code
		langItem := fyne.NewMenuItem(ui.localization.GetAvailableLanguages()[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.settings.GetLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts rebuilds every view with the current language
func (ui *RootUI) refreshUITexts() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.coordinates.Refresh()
	ui.plotter.Refresh()
	ui.setupUI()
}

// showNotification displays a message in the notification panel
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationContainer.Hide()
}

// showError shows an error notification; must run on the UI goroutine
func (ui *RootUI) showError(title, message string) {
	ui.showNotification(title + " " + message)
	ui.app.SendNotification(fyne.NewNotification(title, message))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

func (ui *RootUI) onSettingsSaved(change SettingsChange) {
	if change.SaveDirectory && ui.services.Downloads != nil {
		dir := ui.settings.GetSaveDirectory()
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			ui.log.WithError(err).WithField("path", dir).Warn("Cannot create save directory")
		}
		ui.services.Downloads.SetDownloadDirectory(dir)
	}
	if change.Language {
		ui.refreshUITexts()
	}

	message := ui.localization.GetText(KeySettingsSaved)
	if change.APIURL {
		message += "\n" + ui.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(ui.localization.GetText(KeySettings), message, ui.window)
}

// onArtifactUpdate handles task updates from the download service
func (ui *RootUI) onArtifactUpdate(task model.ArtifactTask) {
	ui.artifactMutex.Lock()
	found := false
	for i := range ui.artifacts {
		if ui.artifacts[i].ID == task.ID {
			ui.artifacts[i] = task
			found = true
			break
		}
	}
	if !found {
		ui.artifacts = append(ui.artifacts, task)
	}
	ui.artifactMutex.Unlock()

	fyne.Do(func() {
		if ui.artifactList != nil {
			ui.artifactList.Refresh()
		}
		if task.Status == model.ArtifactCompleted {
			ui.onArtifactSaved(task)
		}
	})
}

// onArtifactSaved notifies about a saved file and reveals it when configured
func (ui *RootUI) onArtifactSaved(task model.ArtifactTask) {
	message := ui.localization.Format(KeyArtifactSaved, map[string]any{
		"Name": task.DisplayName(),
		"Size": humanize.Bytes(uint64(task.Size)),
	})
	ui.app.SendNotification(fyne.NewNotification(ui.localization.GetText(KeyAppTitle), message))

	if ui.settings.GetAutoRevealOnSave() {
		ui.onRevealFile(task.OutputPath)
		return
	}
	ui.showToastNotification(task, message)
}

// showToastNotification shows an in-app toast with reveal and open actions
func (ui *RootUI) showToastNotification(task model.ArtifactTask, message string) {
	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() { ui.onRevealFile(task.OutputPath) })
	revealBtn.Importance = widget.HighImportance
	openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() { ui.onOpenFile(task.OutputPath) })

	var toastPopup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toastPopup != nil {
			toastPopup.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	content := container.NewVBox(
		container.NewBorder(nil, nil, nil, closeBtn, messageLabel),
		container.NewHBox(revealBtn, openBtn),
	)

	toastPopup = widget.NewPopUp(content, ui.window.Canvas())

	// Position in top-right corner
	canvasSize := ui.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	toastPopup.Resize(toastSize)
	toastPopup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))
	toastPopup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toastPopup.Hide)
	})
}

func (ui *RootUI) onClearArtifacts() {
	if ui.services.Downloads == nil {
		return
	}
	ui.services.Downloads.ClearFinished()

	ui.artifactMutex.Lock()
	ui.artifacts = ui.services.Downloads.GetAllTasks()
	ui.artifactMutex.Unlock()
	ui.artifactList.Refresh()
}

// onRevealFile reveals a saved file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.log.WithError(err).WithField("path", filePath).Warn("Error revealing file")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile opens a saved file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.log.WithError(err).WithField("path", filePath).Warn("Error opening file")
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onCopyPath copies a saved file path to the clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	ui.app.Clipboard().SetContent(filePath)
	ui.showNotification(ui.localization.GetText(KeyPathCopied))
}
