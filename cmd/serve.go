package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/config"
	"github.com/planet-texas-2050/sites-stories/internal/dataset"
	"github.com/planet-texas-2050/sites-stories/internal/gallery"
	"github.com/planet-texas-2050/sites-stories/internal/handlers"
	"github.com/planet-texas-2050/sites-stories/internal/interaction"
	"github.com/planet-texas-2050/sites-stories/internal/render"
	"github.com/planet-texas-2050/sites-stories/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath   string
		datasetPath  string
		port         string
		gallerySize  int
		assetsDir    string
		templatesDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the labeling page",
		Long: `Starts the Sites & Stories page on the specified port.

The image metadata file is loaded once at startup; a file that cannot be
read or parsed stops the server before it listens. Flags override values
from the config file.`,
		Example: `  # Start server on default port 8030
  sites-stories serve

  # Use a config file and a different dataset
  sites-stories serve --config ./sites.yaml --dataset ./photos.parquet

  # Start server on custom port
  sites-stories serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("dataset") {
				cfg.DatasetPath = datasetPath
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("gallery-size") {
				cfg.GallerySize = gallerySize
			}
			if flags.Changed("assets") {
				cfg.AssetsDir = assetsDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store := storage.New()
			handler, err := buildHandler(cfg, store, templatesDir)
			if err != nil {
				return err
			}

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			go expireSessions(cmd.Context(), store, cfg.SessionTTL)

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Sites & Stories available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to CSV or Parquet metadata file")
	cmd.Flags().StringVarP(&port, "port", "p", "8030", "Port to listen on")
	cmd.Flags().IntVar(&gallerySize, "gallery-size", gallery.DefaultSize, "Number of images shown in the gallery")
	cmd.Flags().StringVar(&assetsDir, "assets", "", "Directory with logos and poster images")
	cmd.Flags().StringVar(&templatesDir, "templates", "", "Directory with template overrides")

	return cmd
}

// buildHandler loads the dataset and wires the read-only parts of the app
func buildHandler(cfg *config.Config, store *storage.SessionStore, templatesDir string) (http.Handler, error) {
	ds, err := dataset.NewLoader(cfg.DatasetPath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "path", cfg.DatasetPath, "records", ds.Len())

	g, err := gallery.Build(ds, cfg.GallerySize)
	if err != nil {
		return nil, fmt.Errorf("failed to build gallery: %w", err)
	}

	engine, err := render.New(render.WithBaseDir(templatesDir))
	if err != nil {
		return nil, err
	}

	machine := interaction.NewMachine(g, interaction.WithMap(cfg.Map.Center, cfg.Map.Zoom))

	return handlers.New(handlers.Options{
		Machine:   machine,
		Gallery:   g,
		Renderer:  engine,
		Store:     store,
		Page:      cfg.Page,
		AssetsDir: cfg.AssetsDir,
	}).Routes(), nil
}

// expireSessions drops idle sessions until ctx is done
func expireSessions(ctx context.Context, store *storage.SessionStore, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	interval := max(ttl/4, time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Expire(ttl); n > 0 {
				slog.Debug("Expired idle sessions", "count", n)
			}
		}
	}
}
