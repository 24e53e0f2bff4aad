package interaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

type captureRecorder struct {
	labels []Label
	err    error
}

func (c *captureRecorder) Record(_ context.Context, label Label) error {
	c.labels = append(c.labels, label)
	return c.err
}

var submitTime = time.Date(2024, 3, 9, 14, 5, 30, 0, time.Local)

func newTestMachine(rec Recorder) *Machine {
	ds := dataset.New([]dataset.ImageRecord{
		{EntryID: "IMG-001", Title: "Main Street", ImageURL: "https://example.org/1.jpg"},
		{EntryID: "IMG-007", Title: "Courthouse", ImageURL: "https://example.org/7.jpg"},
	})
	return NewMachine(ds,
		WithRecorder(rec),
		WithClock(func() time.Time { return submitTime }),
	)
}

func apply(t *testing.T, m *Machine, s State, events ...Event) State {
	t.Helper()
	for _, ev := range events {
		s, _ = m.Dispatch(context.Background(), s, ev)
	}
	return s
}

func TestSelectImageShowsRecordURL(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{}, SelectImage{ID: "IMG-001"}, SelectImage{ID: "IMG-007"})

	v := m.View(s)
	if v.SelectedImage == nil {
		t.Fatal("expected a selected image")
	}
	if v.SelectedImage.URL != "https://example.org/7.jpg" {
		t.Errorf("Expected URL of IMG-007, got %s", v.SelectedImage.URL)
	}
	if s.Selection.ImageID != "IMG-007" {
		t.Errorf("only the last selection should be kept, got %s", s.Selection.ImageID)
	}
}

func TestSelectUnknownImageIgnored(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{}, SelectImage{ID: "IMG-001"})

	next, out := m.Reduce(s, SelectImage{ID: "missing"}, submitTime)
	if out.Changed {
		t.Error("unknown id should not change state")
	}
	if next.Selection.ImageID != "IMG-001" {
		t.Errorf("selection changed to %s", next.Selection.ImageID)
	}
}

func TestMapClick(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{},
		ClickMap{Point: &geo.LatLng{Lat: 30, Lng: -97}},
		ClickMap{Point: &geo.LatLng{Lat: 26.903, Lng: -98.158}},
	)

	v := m.View(s)
	if len(v.Map.Markers) != 1 {
		t.Fatalf("Expected one marker, got %d", len(v.Map.Markers))
	}
	if v.Map.Markers[0].Position != (geo.LatLng{Lat: 26.903, Lng: -98.158}) {
		t.Errorf("marker at %+v", v.Map.Markers[0].Position)
	}
	if v.Map.Message != "You have selected a point at 26.903, -98.158" {
		t.Errorf("unexpected message %q", v.Map.Message)
	}
}

func TestMapClickWithoutPointIgnored(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{}, ClickMap{Point: &geo.LatLng{Lat: 1, Lng: 1}})

	tests := []struct {
		name string
		ev   ClickMap
	}{
		{name: "nil point", ev: ClickMap{}},
		{name: "out of range", ev: ClickMap{Point: &geo.LatLng{Lat: 200, Lng: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out := m.Reduce(s, tt.ev, submitTime)
			if out.Changed {
				t.Error("expected no change")
			}
			if diff := cmp.Diff(s, next); diff != "" {
				t.Errorf("state changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOpenSubmissionPopulatesDraft(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{},
		SelectImage{ID: "IMG-007"},
		ClickMap{Point: &geo.LatLng{Lat: 26.903, Lng: -98.158}},
		OpenSubmission{},
	)

	v := m.View(s)
	if !v.Modals.Submission {
		t.Fatal("submission modal should be open")
	}
	want := DraftView{
		Timestamp:   "2024-03-09 14:05:30",
		ImageID:     "IMG-007",
		Coordinates: "(26.903, -98.158)",
	}
	if diff := cmp.Diff(want, v.Draft); diff != "" {
		t.Errorf("draft mismatch (-want +got):\n%s", diff)
	}
	if s.Draft.Coord == nil || *s.Draft.Coord != (geo.LatLng{Lat: 26.903, Lng: -98.158}) {
		t.Errorf("draft coordinate = %v", s.Draft.Coord)
	}
	if !s.Draft.Timestamp.Equal(submitTime) {
		t.Errorf("draft timestamp = %v, expected %v", s.Draft.Timestamp, submitTime)
	}
}

func TestOpenSubmissionRequiresSelection(t *testing.T) {
	m := newTestMachine(nil)

	tests := []struct {
		name   string
		events []Event
	}{
		{name: "nothing selected", events: nil},
		{name: "image only", events: []Event{SelectImage{ID: "IMG-001"}}},
		{name: "point only", events: []Event{ClickMap{Point: &geo.LatLng{Lat: 1, Lng: 2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := apply(t, m, State{}, tt.events...)
			if m.View(s).CanSubmit {
				t.Error("submit should be disabled")
			}
			next, out := m.Reduce(s, OpenSubmission{}, submitTime)
			if out.Changed || next.Modals.Submission || next.Draft != nil {
				t.Errorf("submission opened without a full selection: %+v", next)
			}
		})
	}
}

func TestConfirmAndCancelLeaveSameView(t *testing.T) {
	rec := &captureRecorder{}
	m := newTestMachine(rec)
	open := apply(t, m, State{},
		SelectImage{ID: "IMG-007"},
		ClickMap{Point: &geo.LatLng{Lat: 26.903, Lng: -98.158}},
		OpenSubmission{},
	)

	confirmed := apply(t, m, open, ConfirmSubmission{})
	cancelled := apply(t, m, open, CancelSubmission{})

	if confirmed.Modals.Submission || cancelled.Modals.Submission {
		t.Fatal("modal should be closed")
	}
	if diff := cmp.Diff(m.View(confirmed), m.View(cancelled)); diff != "" {
		t.Errorf("confirm and cancel differ (-confirm +cancel):\n%s", diff)
	}

	if len(rec.labels) != 1 {
		t.Fatalf("Expected one recorded label, got %d", len(rec.labels))
	}
	got := rec.labels[0]
	if got.ImageID != "IMG-007" || got.Timestamp.Location() != time.UTC || !got.Timestamp.Equal(submitTime) {
		t.Errorf("unexpected label %+v", got)
	}
}

func TestConfirmWithoutOpenModalIsNoop(t *testing.T) {
	rec := &captureRecorder{}
	m := newTestMachine(rec)

	for _, ev := range []Event{ConfirmSubmission{}, CancelSubmission{}} {
		_, out := m.Dispatch(context.Background(), State{}, ev)
		if out.Changed || out.Committed != nil {
			t.Errorf("%T on closed modal changed state", ev)
		}
	}
	if len(rec.labels) != 0 {
		t.Errorf("nothing should be recorded, got %d", len(rec.labels))
	}
}

func TestStepDoesNotRecord(t *testing.T) {
	rec := &captureRecorder{}
	m := newTestMachine(rec)
	s := apply(t, m, State{},
		SelectImage{ID: "IMG-001"},
		ClickMap{Point: &geo.LatLng{Lat: 1, Lng: 2}},
		OpenSubmission{},
	)
	rec.labels = nil

	_, out := m.Step(s, ConfirmSubmission{})
	if out.Committed == nil {
		t.Fatal("confirm should return the committed draft")
	}
	if len(rec.labels) != 0 {
		t.Fatalf("Step recorded %d labels", len(rec.labels))
	}

	m.Commit(context.Background(), nil)
	m.Commit(context.Background(), out.Committed)
	if len(rec.labels) != 1 || rec.labels[0].ImageID != "IMG-001" {
		t.Errorf("unexpected labels after Commit: %+v", rec.labels)
	}
}

func TestRecorderErrorKeepsTransition(t *testing.T) {
	rec := &captureRecorder{err: errors.New("boom")}
	m := newTestMachine(rec)
	s := apply(t, m, State{},
		SelectImage{ID: "IMG-001"},
		ClickMap{Point: &geo.LatLng{Lat: 1, Lng: 2}},
		OpenSubmission{},
		ConfirmSubmission{},
	)

	if s.Modals.Submission || s.Draft != nil {
		t.Errorf("modal should be closed after a failed record: %+v", s)
	}
}

func TestIntroModal(t *testing.T) {
	m := newTestMachine(nil)

	s := apply(t, m, State{}, PageLoad{})
	if !m.View(s).Modals.Intro {
		t.Fatal("intro should be visible on first load")
	}

	s = apply(t, m, s, DismissIntro{})
	if m.View(s).Modals.Intro {
		t.Fatal("intro should close on OK")
	}

	s = apply(t, m, s, PageLoad{}, PageLoad{})
	if m.View(s).Modals.Intro {
		t.Error("intro should stay hidden for the rest of the session")
	}
}

func TestPosterModal(t *testing.T) {
	m := newTestMachine(nil)

	s := apply(t, m, State{}, OpenPoster{})
	if !s.Modals.Poster {
		t.Fatal("poster should be open")
	}
	s = apply(t, m, s, ClosePoster{})
	if s.Modals.Poster {
		t.Fatal("poster should be closed")
	}

	_, out := m.Reduce(s, ClosePoster{}, submitTime)
	if out.Changed {
		t.Error("closing a closed poster should be a no-op")
	}
}

func TestModalsAreIndependent(t *testing.T) {
	m := newTestMachine(nil)
	s := apply(t, m, State{},
		PageLoad{},
		OpenPoster{},
		SelectImage{ID: "IMG-001"},
		ClickMap{Point: &geo.LatLng{Lat: 1, Lng: 2}},
		OpenSubmission{},
	)

	want := Modals{Intro: true, Submission: true, Poster: true}
	if s.Modals != want {
		t.Errorf("Expected %+v, got %+v", want, s.Modals)
	}
}

func TestViewWithEmptyState(t *testing.T) {
	m := newTestMachine(nil)
	v := m.View(State{})

	want := View{
		Map: MapView{
			Center:  geo.LatLng{Lat: geo.DefaultLat, Lng: geo.DefaultLng},
			Zoom:    geo.DefaultZoom,
			Markers: []geo.Marker{},
		},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDraftToleratesMissingSelection(t *testing.T) {
	d := NewDraft(submitTime, Selection{})
	if d.ImageID != "" || d.CoordinatesText() != "" {
		t.Errorf("expected blank fields, got %+v", d)
	}
	if d.TimestampText() != "2024-03-09 14:05:30" {
		t.Errorf("unexpected timestamp %q", d.TimestampText())
	}

	var nilDraft *LabelDraft
	if nilDraft.TimestampText() != "" || nilDraft.CoordinatesText() != "" {
		t.Error("nil draft should format as blank")
	}
}
