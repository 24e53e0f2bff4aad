package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/planet-texas-2050/sites-stories/internal/interaction"
)

// HandlePage renders the whole page for the caller's session. Every load
// counts as a page-load event.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)
	session := h.dispatch(r, sessionID, interaction.PageLoad{})
	view := h.machine.View(session.State)

	viewJSON, err := json.Marshal(view)
	if err != nil {
		h.writeError(w, "Failed to encode view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	page, err := h.renderer.RenderTemplate("page.html", map[string]any{
		"page":      h.page,
		"gallery":   h.gallery.Entries(),
		"view":      view,
		"view_json": string(viewJSON),
	})
	if err != nil {
		h.writeError(w, "Failed to render page: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write([]byte(page)); err != nil {
		h.writeError(w, "Failed to write page: "+err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.gallery.Entries())
}
