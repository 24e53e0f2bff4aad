package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/planet-texas-2050/sites-stories/internal/interaction"
	"github.com/planet-texas-2050/sites-stories/internal/models"
)

// SessionCookie names the cookie that carries the session id
const SessionCookie = "sites_session"

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none or an invalid one
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Debug("Session created", "session_id", id)
	return id
}

// dispatch applies ev to the session while the store holds it. A confirmed
// label is recorded after the store is released.
func (h *Handler) dispatch(r *http.Request, sessionID string, ev interaction.Event) models.Session {
	var committed *interaction.LabelDraft
	session := h.sessionStore.Update(sessionID, func(s models.Session) models.Session {
		next, out := h.machine.Step(s.State, ev)
		if out.Changed {
			slog.Debug("Session state changed", "session_id", sessionID, "event", eventName(ev))
		}
		committed = out.Committed
		s.State = next
		return s
	})
	h.machine.Commit(r.Context(), committed)
	return session
}

func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > maxEventBytes {
		h.writeError(w, "Event too large", http.StatusRequestEntityTooLarge)
		return
	}

	ev, err := interaction.DecodeEvent(body)
	if err != nil {
		h.writeError(w, "Invalid event: "+err.Error(), http.StatusBadRequest)
		return
	}

	session := h.dispatch(r, sessionID, ev)
	h.writeJSON(w, h.machine.View(session.State))
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessionStore.GetOrCreate(h.sessionID(w, r))
	h.writeJSON(w, h.machine.View(session.State))
}

func eventName(ev interaction.Event) string {
	switch ev.(type) {
	case interaction.SelectImage:
		return interaction.TypeSelectImage
	case interaction.ClickMap:
		return interaction.TypeClickMap
	case interaction.OpenSubmission:
		return interaction.TypeOpenSubmission
	case interaction.ConfirmSubmission:
		return interaction.TypeConfirmSubmission
	case interaction.CancelSubmission:
		return interaction.TypeCancelSubmission
	case interaction.PageLoad:
		return interaction.TypePageLoad
	case interaction.DismissIntro:
		return interaction.TypeDismissIntro
	case interaction.OpenPoster:
		return interaction.TypeOpenPoster
	case interaction.ClosePoster:
		return interaction.TypeClosePoster
	default:
		return "unknown"
	}
}
