package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simurg/simurg-desktop/internal/coords"
	"github.com/simurg/simurg-desktop/internal/form"
)

func newCoordinatesCommand(flags *globalFlags, version string) *cobra.Command {
	var f form.Coordinates

	cmd := &cobra.Command{
		Use:   "coordinates",
		Short: "Calculate receiver coordinates from an observation and a navigation file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return err
			}
			rt, err := setup(cmd, flags.loader(), true, version)
			if err != nil {
				return err
			}
			client, err := rt.client()
			if err != nil {
				return err
			}

			log := rt.logger.WithField("command", "coordinates")
			log.WithField("obs", coords.DescribeFile(f.ObsFile)).
				WithField("nav", coords.DescribeFile(f.NavFile)).
				Info("Uploading files")

			result, err := coords.NewService(client, log).Calculate(cmd.Context(), f)
			if err != nil {
				return err
			}

			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.ObsFile, "obs", "", "observation file ("+form.ObsExtension+")")
	cmd.Flags().StringVar(&f.NavFile, "nav", "", "navigation file ("+form.NavExtension+")")
	return cmd
}
