package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planet-texas-2050/sites-stories/internal/config"
	"github.com/planet-texas-2050/sites-stories/internal/gallery"
	"github.com/planet-texas-2050/sites-stories/internal/interaction"
	"github.com/planet-texas-2050/sites-stories/internal/render"
	"github.com/planet-texas-2050/sites-stories/internal/storage"
)

// maxEventBytes bounds the size of an event request body
const maxEventBytes = 64 * 1024

// Options are the dependencies of the web handlers. Everything except the
// session store is read-only and shared across sessions.
type Options struct {
	Machine   *interaction.Machine
	Gallery   *gallery.Gallery
	Renderer  *render.Engine
	Store     *storage.SessionStore
	Page      config.PageConfig
	AssetsDir string
}

type Handler struct {
	sessionStore *storage.SessionStore
	machine      *interaction.Machine
	gallery      *gallery.Gallery
	renderer     *render.Engine
	page         config.PageConfig
	assetsDir    string
}

func New(opts Options) *Handler {
	store := opts.Store
	if store == nil {
		store = storage.New()
	}
	return &Handler{
		sessionStore: store,
		machine:      opts.Machine,
		gallery:      opts.Gallery,
		renderer:     opts.Renderer,
		page:         opts.Page,
		assetsDir:    opts.AssetsDir,
	}
}

// Routes returns the application as an http.Handler, ready to be served
// directly or mounted in another host
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Get("/", h.HandlePage)
	r.Get("/static/*", h.HandleStatic)

	r.Route("/api", func(r chi.Router) {
		r.Post("/events", h.HandleEvent)
		r.Get("/session", h.HandleSession)
		r.Get("/gallery", h.HandleGallery)
	})

	return r
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
