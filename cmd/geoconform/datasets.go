package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoapi/geoconform/dataset"
)

var listDatasets bool

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Validate the bundled reference datasets",
	Args:  cobra.NoArgs,
	RunE:  runDatasets,
}

func init() {
	datasetsCmd.Flags().BoolVar(&listDatasets, "list", false, "only list the dataset names and kinds")
}

func runDatasets(cmd *cobra.Command, args []string) error {
	names := dataset.Names()
	if listDatasets {
		for _, n := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", n, dataset.KindOf(n))
		}
		return nil
	}
	results, err := validateInputs(cmd.Context(), names, dataset.Content)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), results)
}
