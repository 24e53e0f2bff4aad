// Package images mirrors collection photographs to local disk.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
)

// maxImageBytes bounds a single download
const maxImageBytes = 50 << 20

// ErrExists is returned when the target file is already on disk
var ErrExists = errors.New("image already downloaded")

// Fetcher retrieves collection images over HTTP
type Fetcher struct {
	HTTPClient *http.Client
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Summary counts the results of a Mirror run
type Summary struct {
	Downloaded int
	Skipped    int
	Errors     int
}

// FileName is the local name for a record's image: the entry ID plus the
// extension of the URL path, ".jpg" when the URL has none
func FileName(r dataset.ImageRecord) string {
	ext := ".jpg"
	if u, err := url.Parse(r.ImageURL); err == nil {
		if e := strings.ToLower(path.Ext(u.Path)); e != "" {
			ext = e
		}
	}
	name := strings.Map(func(c rune) rune {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return c
	}, r.EntryID)
	return name + ext
}

// Mirror downloads every record's image into outputDir. Files already present
// are skipped; failures are logged and counted, not returned. When two records
// map to the same file name the later one gets its 1-based row number appended.
func (f *Fetcher) Mirror(ctx context.Context, records []dataset.ImageRecord, outputDir string) (Summary, error) {
	var sum Summary
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return sum, fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]bool, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if strings.TrimSpace(r.ImageURL) == "" {
			slog.Warn("No image URL for record", "entry_id", r.EntryID)
			sum.Skipped++
			continue
		}

		name := FileName(r)
		if used[name] {
			ext := filepath.Ext(name)
			renamed := fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), i+1, ext)
			slog.Warn("Image file name already used in this run", "entry_id", r.EntryID, "name", name, "renamed", renamed)
			name = renamed
		}
		used[name] = true

		target := filepath.Join(outputDir, name)
		err := f.Download(ctx, r.ImageURL, target)
		switch {
		case errors.Is(err, ErrExists):
			sum.Skipped++
		case err != nil:
			slog.Warn("Failed to download image", "entry_id", r.EntryID, "url", r.ImageURL, "err", err)
			sum.Errors++
		default:
			slog.Info("Downloaded image", "index", i+1, "total", len(records), "entry_id", r.EntryID)
			sum.Downloaded++
		}
	}
	return sum, nil
}

// Download fetches rawURL into outputPath. The file is written through a
// temporary name so a failed transfer never leaves a partial image behind.
func (f *Fetcher) Download(ctx context.Context, rawURL, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return ErrExists
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxImageBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write image data: %w", err)
	}
	if n > maxImageBytes {
		return fmt.Errorf("image larger than %d bytes", maxImageBytes)
	}
	if n == 0 {
		return fmt.Errorf("image is empty")
	}

	if err := os.Rename(tmp.Name(), outputPath); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}
