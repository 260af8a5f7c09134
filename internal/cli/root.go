// Package cli holds the cobra command tree. Without a subcommand the desktop
// window starts; the other commands drive the same services headlessly.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// AppName is shown in the window title and in version output
const AppName = "SIMURG"

type globalFlags struct {
	configFile string
	apiURL     string
	logLevel   string
}

// NewRootCmd creates the root command
func NewRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "simurg",
		Short:         "Desktop client for the SIMURG positioning and plotting service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, flags, version)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file (yaml, toml or json)")
	pf.StringVar(&flags.apiURL, "api-url", "", "API base URL, overrides API_URL")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newGUICommand(flags, version),
		newCoordinatesCommand(flags, version),
		newPlotCommand(flags, version),
		newArchiveCommand(flags, version),
		newCombosCommand(flags),
		newVersionCommand(version),
	)

	return rootCmd
}

// Execute runs the command tree until it finishes or the process is
// interrupted and returns the exit code
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
