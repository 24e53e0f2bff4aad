// Package interaction is the per-session state machine behind the page: which
// image is selected, where the map was clicked, and which modal is open.
package interaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

// ImageLookup resolves an entry ID to its record
type ImageLookup interface {
	Lookup(id string) (dataset.ImageRecord, bool)
}

// Outcome describes what a reduction did
type Outcome struct {
	Changed   bool
	Committed *LabelDraft
}

// Machine applies events to session state. It holds only read-only
// dependencies and is safe to share between sessions.
type Machine struct {
	images   ImageLookup
	recorder Recorder
	now      func() time.Time
	center   geo.LatLng
	zoom     int
}

// Option configures a Machine
type Option func(*Machine)

// WithRecorder sets where confirmed labels are sent
func WithRecorder(r Recorder) Option {
	return func(m *Machine) {
		if r != nil {
			m.recorder = r
		}
	}
}

// WithClock overrides the time source used for draft timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMap sets the initial map center and zoom
func WithMap(center geo.LatLng, zoom int) Option {
	return func(m *Machine) {
		m.center = center
		m.zoom = zoom
	}
}

// NewMachine creates a state machine over the given images
func NewMachine(images ImageLookup, options ...Option) *Machine {
	m := &Machine{
		images:   images,
		recorder: LogRecorder{},
		now:      time.Now,
		center:   geo.LatLng{Lat: geo.DefaultLat, Lng: geo.DefaultLng},
		zoom:     geo.DefaultZoom,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// Reduce returns the state after ev. It performs no I/O; a confirmed draft is
// returned in the Outcome for the caller to record.
func (m *Machine) Reduce(s State, ev Event, now time.Time) (State, Outcome) {
	switch e := ev.(type) {
	case SelectImage:
		if _, ok := m.images.Lookup(e.ID); !ok {
			return s, Outcome{}
		}
		if s.Selection.ImageID == e.ID {
			return s, Outcome{}
		}
		s.Selection.ImageID = e.ID
		return s, Outcome{Changed: true}

	case ClickMap:
		if e.Point == nil || !e.Point.Valid() {
			return s, Outcome{}
		}
		p := *e.Point
		s.Selection.Coord = &p
		return s, Outcome{Changed: true}

	case OpenSubmission:
		if !s.Selection.Ready() {
			return s, Outcome{}
		}
		s.Modals.Submission = true
		s.Draft = NewDraft(now, s.Selection)
		return s, Outcome{Changed: true}

	case ConfirmSubmission:
		if !s.Modals.Submission {
			return s, Outcome{}
		}
		committed := s.Draft
		s.Modals.Submission = false
		s.Draft = nil
		return s, Outcome{Changed: true, Committed: committed}

	case CancelSubmission:
		if !s.Modals.Submission {
			return s, Outcome{}
		}
		s.Modals.Submission = false
		s.Draft = nil
		return s, Outcome{Changed: true}

	case PageLoad:
		if s.IntroDismissed || s.Modals.Intro {
			return s, Outcome{}
		}
		s.Modals.Intro = true
		return s, Outcome{Changed: true}

	case DismissIntro:
		if !s.Modals.Intro {
			return s, Outcome{}
		}
		s.Modals.Intro = false
		s.IntroDismissed = true
		return s, Outcome{Changed: true}

	case OpenPoster:
		if s.Modals.Poster {
			return s, Outcome{}
		}
		s.Modals.Poster = true
		return s, Outcome{Changed: true}

	case ClosePoster:
		if !s.Modals.Poster {
			return s, Outcome{}
		}
		s.Modals.Poster = false
		return s, Outcome{Changed: true}
	}

	return s, Outcome{}
}

// Step reduces ev at the current time. Like Reduce it performs no I/O, so it
// is safe to call while holding a lock.
func (m *Machine) Step(s State, ev Event) (State, Outcome) {
	return m.Reduce(s, ev, m.now())
}

// Commit hands a confirmed draft to the recorder. A nil draft is a no-op.
// Recorder failures are logged.
func (m *Machine) Commit(ctx context.Context, draft *LabelDraft) {
	if draft == nil {
		return
	}
	if err := m.recorder.Record(ctx, draft.Label()); err != nil {
		slog.Error("Unable to record label", "image_id", draft.ImageID, "err", err)
	}
}

// Dispatch is Step followed by Commit. The transition stands even when the
// recorder fails.
func (m *Machine) Dispatch(ctx context.Context, s State, ev Event) (State, Outcome) {
	next, out := m.Step(s, ev)
	m.Commit(ctx, out.Committed)
	return next, out
}
