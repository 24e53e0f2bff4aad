package datasetcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
	"github.com/planet-texas-2050/sites-stories/internal/images"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd() *cobra.Command {
	var datasetPath string
	var outputDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Mirror the collection images to a local directory",
		Long: `Download the image behind every record's Image_url.

Each image is saved as <Entry_ID><ext> in the output directory. Images that
are already present are skipped, so the command can be re-run after a
partial failure.`,
		Example: `  # Mirror the gallery images
  sites-stories dataset download --dataset ./assets/mosth-beulah-metadata.csv --output ./mirror --limit 10

  # Mirror everything
  sites-stories dataset download --dataset ./photos.parquet --output ./mirror`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeDownload(cmd.Context(), cmd.OutOrStdout(), images.NewFetcher(), datasetPath, outputDir, limit)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to CSV or Parquet metadata file (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to save images to (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of records to download (0 for all)")

	_ = cmd.MarkFlagRequired("dataset")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func executeDownload(ctx context.Context, w io.Writer, fetcher *images.Fetcher, datasetPath, outputDir string, limit int) error {
	slog.Info("Starting image download", "dataset", datasetPath, "output", outputDir, "limit", limit)

	ds, err := dataset.NewLoader(datasetPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	records := ds.Records()
	if limit > 0 {
		records = ds.Head(limit)
	}

	sum, err := fetcher.Mirror(ctx, records, outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nImage download complete!\n")
	fmt.Fprintf(w, "  Downloaded: %d\n", sum.Downloaded)
	fmt.Fprintf(w, "  Skipped (no URL or already exists): %d\n", sum.Skipped)
	fmt.Fprintf(w, "  Errors: %d\n", sum.Errors)
	fmt.Fprintf(w, "  Output location: %s\n", outputDir)
	return nil
}
