package cli

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simurg/simurg-desktop/internal/config"
	"github.com/simurg/simurg-desktop/internal/coords"
	"github.com/simurg/simurg-desktop/internal/download"
	"github.com/simurg/simurg-desktop/internal/platform"
	"github.com/simurg/simurg-desktop/internal/session"
	"github.com/simurg/simurg-desktop/internal/ui"
)

const (
	AppID = "com.simurg.desktop"

	WindowWidth  = 1024
	WindowHeight = 720
)

func newGUICommand(flags *globalFlags, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, flags, version)
		},
	}
}

func runGUI(cmd *cobra.Command, flags *globalFlags, version string) error {
	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(ui.NewAppTheme())
	settings := config.NewSettings(fyneApp)

	// A URL saved in the settings dialog wins over the environment, a flag wins over both.
	loader := flags.loader()
	if flags.apiURL == "" {
		if override := settings.GetAPIURLOverride(); override != "" {
			loader.Set(config.KeyAPIURL, override)
		}
	}

	rt, err := setup(cmd, loader, true, version)
	if err != nil {
		return err
	}
	log := rt.logger.WithField("component", "gui")

	if rt.env.Language != config.DefaultLanguage && fyneApp.Preferences().String(config.KeyLanguage) == "" {
		settings.SetLanguage(rt.env.Language)
	}

	cat, err := rt.catalog()
	if err != nil {
		return err
	}
	client, err := rt.client()
	if err != nil {
		return err
	}

	saveDir := settings.GetSaveDirectory()
	if err := platform.CreateDirectoryIfNotExists(saveDir); err != nil {
		log.WithError(err).WithField("path", saveDir).Warn("Cannot create save directory")
	}

	downloads := download.NewService(client, saveDir, rt.logger)
	dashboard := session.NewController(client, downloads, session.Options{
		PollInterval: rt.env.PollInterval,
		Logger:       rt.logger,
	})
	defer dashboard.Close()

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadLogoResource(rt.env.AssetsDir); err == nil {
		window.SetIcon(icon)
	}

	root := ui.NewRootUI(window, fyneApp, settings, ui.Services{
		Dashboard:   dashboard,
		Coordinates: coords.NewService(client, rt.logger),
		Downloads:   downloads,
		Combos:      cat.All(),
		AssetsDir:   rt.env.AssetsDir,
		Logger:      rt.logger,
	})
	defer root.Close()

	log.WithFields(logrus.Fields{"version": version, "api_url": rt.env.APIURL}).Info("Starting SIMURG desktop")
	window.ShowAndRun()
	return nil
}
