package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planet-texas-2050/sites-stories/internal/gallery"
	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

// Config holds the application settings read from the YAML file
type Config struct {
	Port        string        `yaml:"port"`
	DatasetPath string        `yaml:"dataset"`
	AssetsDir   string        `yaml:"assets_dir"`
	GallerySize int           `yaml:"gallery_size"`
	SessionTTL  time.Duration `yaml:"session_ttl"`
	Map         MapConfig     `yaml:"map"`
	Page        PageConfig    `yaml:"page"`
}

// MapConfig is the initial map view
type MapConfig struct {
	Center geo.LatLng `yaml:"center"`
	Zoom   int        `yaml:"zoom"`
}

// PageConfig is the static text and images of the page
type PageConfig struct {
	Title           string   `yaml:"title" json:"title"`
	Intro           []string `yaml:"intro" json:"intro"`
	Acknowledgement string   `yaml:"acknowledgement" json:"acknowledgement"`
	Sponsors        []string `yaml:"sponsors" json:"sponsors"`
	Logos           []string `yaml:"logos" json:"logos"`
	Poster          string   `yaml:"poster" json:"poster"`
}

// Default returns the settings used when no config file is given
func Default() *Config {
	return &Config{
		Port:        "8030",
		DatasetPath: "assets/mosth-beulah-metadata.csv",
		AssetsDir:   "assets",
		GallerySize: gallery.DefaultSize,
		SessionTTL:  12 * time.Hour,
		Map: MapConfig{
			Center: geo.LatLng{Lat: geo.DefaultLat, Lng: geo.DefaultLng},
			Zoom:   geo.DefaultZoom,
		},
		Page: PageConfig{
			Title: "Sites & Stories",
			Intro: []string{
				"The Sites & Stories application allows users to select a photograph and connect it with where they think it’s located on a map. Additionally, people can add comments and describe what they know about the image or location.",
				"By providing your data, information, and experiences with events in your region, you will contribute to an effort to make more informed decisions about how to respond to and prepare for disasters. The stories or comments you make on photographs will help improve tools we use to model where flooding may impact communities.",
				"Data collected during the study will be stored, maintained, and made accessible within the Texas Disaster Information System (TDIS). TDIS will be an interactive web-based spatial data system to support disaster preparedness, response, recovery, and mitigation within communities and regions across the State of Texas. TDIS will comply with state and federal information and data security requirements and will provide powerful analytical and planning tools for local communities.",
			},
			Acknowledgement: "This work is a collaboration between the Museum of South Texas and the Planet Texas 2050 project with sponsorship from",
			Sponsors: []string{
				"The National Science Foundation Smart & Connected Cities program (award number 1952196)",
				"Microsoft Azure Intersectionality and Equity program",
				"The Planet Texas project of the Bridging Barriers Program at The University of Texas at Austin",
				"Navigating the New Arctic program (Award Number (FAIN): 2127353)",
			},
			Logos:  []string{"Logo-MOSTH.png", "Logo-PT2050.png", "Logo-Azure.png", "Logo-NSF.png"},
			Poster: "Poster.png",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if strings.TrimSpace(c.DatasetPath) == "" {
		errs = append(errs, errors.New("dataset is required"))
	}
	if c.GallerySize < 0 {
		errs = append(errs, fmt.Errorf("gallery_size must not be negative, got %d", c.GallerySize))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session_ttl must not be negative, got %s", c.SessionTTL))
	}
	if !c.Map.Center.Valid() {
		errs = append(errs, fmt.Errorf("map center %s is out of range", c.Map.Center))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 20 {
		errs = append(errs, fmt.Errorf("map zoom must be between 0 and 20, got %d", c.Map.Zoom))
	}
	return errors.Join(errs...)
}
