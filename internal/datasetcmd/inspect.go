package datasetcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
	"github.com/planet-texas-2050/sites-stories/internal/gallery"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var datasetPath string
	var format string
	var limit int
	var showGallery bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a metadata file and print its records",
		Long: `Inspect records from a CSV or Parquet metadata file.

The file is loaded exactly as the server loads it at startup, so this is
also a quick way to validate a dataset before deploying it.`,
		Example: `  # Show the first 10 records
  sites-stories dataset inspect --dataset ./assets/mosth-beulah-metadata.csv

  # Dump every record as YAML
  sites-stories dataset inspect --dataset ./photos.parquet --limit 0 --format yaml

  # Show the cards the sidebar gallery would display
  sites-stories dataset inspect --dataset ./photos.csv --gallery`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if datasetPath == "" {
				return fmt.Errorf("--dataset is required")
			}
			return executeInspect(cmd.OutOrStdout(), datasetPath, format, limit, showGallery)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to CSV or Parquet metadata file (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, yaml, csv)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of records to show (0 for all)")
	cmd.Flags().BoolVar(&showGallery, "gallery", false, "Show gallery cards instead of raw records")

	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeInspect(w io.Writer, datasetPath, format string, limit int, showGallery bool) error {
	ds, err := dataset.NewLoader(datasetPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if limit <= 0 {
		limit = ds.Len()
	}

	if showGallery {
		g, err := gallery.Build(ds, limit)
		if err != nil {
			return fmt.Errorf("failed to build gallery: %w", err)
		}
		return printEntries(w, format, g.Entries())
	}
	return printRecords(w, format, ds.Len(), ds.Head(limit))
}

func printRecords(w io.Writer, format string, total int, records []dataset.ImageRecord) error {
	switch format {
	case "text":
		fmt.Fprintf(w, "Records: %d (showing %d)\n", total, len(records))
		for i, r := range records {
			fmt.Fprintf(w, "\n[%d] %s\n", i+1, r.EntryID)
			fmt.Fprintf(w, "  Title:       %s\n", r.Title)
			fmt.Fprintf(w, "  Description: %s\n", r.Description)
			fmt.Fprintf(w, "  Image:       %s\n", r.ImageURL)
		}
		return nil
	case "json":
		return writeJSON(w, records)
	case "yaml":
		return writeYAML(w, records)
	case "csv":
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{dataset.ColumnEntryID, dataset.ColumnTitle, dataset.ColumnDescription, dataset.ColumnImageURL}); err != nil {
			return err
		}
		for _, r := range records {
			if err := writer.Write([]string{r.EntryID, r.Title, r.Description, r.ImageURL}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printEntries(w io.Writer, format string, entries []gallery.Entry) error {
	switch format {
	case "text":
		for i, e := range entries {
			fmt.Fprintf(w, "[%d] %s\n  %s\n  %s\n", i+1, e.ID, e.Details, e.Markdown)
		}
		return nil
	case "json":
		return writeJSON(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	default:
		return fmt.Errorf("unsupported format for gallery: %s", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
