package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Column names expected in the metadata file
const (
	ColumnEntryID     = "Entry_ID"
	ColumnTitle       = "Title"
	ColumnDescription = "Description"
	ColumnImageURL    = "Image_url"
)

var requiredColumns = []string{ColumnEntryID, ColumnTitle, ColumnDescription, ColumnImageURL}

// Loader handles loading of the photograph metadata file
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load reads the whole file (CSV or Parquet) into a Dataset
func (l *Loader) Load() (*Dataset, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	var (
		records []ImageRecord
		err     error
	)
	switch ext {
	case ".csv":
		records, err = l.loadCSV()
	case ".parquet":
		records, err = l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Dataset loaded", "path", l.datasetPath, "records", len(records))
	return New(records), nil
}

// loadCSV loads records from a CSV file with a header row
func (l *Loader) loadCSV() ([]ImageRecord, error) {
	slog.Debug("Opening CSV file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	slog.Debug("CSV file stats", "size_bytes", info.Size())

	return parseCSV(file)
}

func parseCSV(r io.Reader) ([]ImageRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []ImageRecord
	lineNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNum++
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV at line %d: %w", lineNum, err)
		}

		records = append(records, ImageRecord{
			EntryID:     strings.TrimSpace(row[columns[ColumnEntryID]]),
			Title:       row[columns[ColumnTitle]],
			Description: row[columns[ColumnDescription]],
			ImageURL:    strings.TrimSpace(row[columns[ColumnImageURL]]),
		})
	}

	return records, nil
}

// columnIndex maps each required column to its position in the header.
// Matching ignores case and surrounding whitespace.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := positions[key]; !seen {
			positions[key] = i
		}
	}

	columns := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, col := range requiredColumns {
		i, ok := positions[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		columns[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset header is missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet() ([]ImageRecord, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	slog.Debug("Parquet file stats", "size_bytes", info.Size())

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[ImageRecord](pf)
	defer reader.Close()

	var records []ImageRecord
	rows := make([]ImageRecord, 128) // Read in batches

	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(records))

	return records, nil
}
