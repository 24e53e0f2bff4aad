package cmd

import (
	"github.com/planet-texas-2050/sites-stories/internal/datasetcmd"
	"github.com/spf13/cobra"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Image metadata tools",
		Long: `Tools for working with the image metadata file the server loads.

Supports CSV files with Entry_ID, Title, Description and Image_url columns,
and Parquet files with the same fields.`,
	}

	cmd.AddCommand(datasetcmd.NewInspectCmd())
	cmd.AddCommand(datasetcmd.NewDownloadCmd())

	return cmd
}
