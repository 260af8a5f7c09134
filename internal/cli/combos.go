package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCombosCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "combos",
		Short: "List the configured plot combos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, flags.loader(), false, "")
			if err != nil {
				return err
			}
			cat, err := rt.catalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPLOTS")
			for _, combo := range cat.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", combo.ID, combo.Name, combo.PlotCount())
			}
			return w.Flush()
		},
	}
}
