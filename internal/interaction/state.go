package interaction

import (
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

// TimestampLayout is how draft timestamps are shown in the submission modal
const TimestampLayout = "2006-01-02 15:04:05"

// Selection is the image and map point the user last picked
type Selection struct {
	ImageID string      `json:"image_id,omitempty"`
	Coord   *geo.LatLng `json:"coord,omitempty"`
}

// Ready reports whether both an image and a point have been picked
func (s Selection) Ready() bool {
	return s.ImageID != "" && s.Coord != nil
}

// Modals holds the visibility of the three dialogs. Nothing forces them to be
// mutually exclusive.
type Modals struct {
	Intro      bool `json:"intro"`
	Submission bool `json:"submission"`
	Poster     bool `json:"poster"`
}

// LabelDraft is the label shown in the submission modal. It only lives while
// the modal is open.
type LabelDraft struct {
	Timestamp time.Time   `json:"timestamp"`
	ImageID   string      `json:"image_id"`
	Coord     *geo.LatLng `json:"coord,omitempty"`
}

// NewDraft assembles a draft from the current selection. Missing parts stay
// blank.
func NewDraft(now time.Time, sel Selection) *LabelDraft {
	d := &LabelDraft{Timestamp: now, ImageID: sel.ImageID}
	if sel.Coord != nil {
		c := *sel.Coord
		d.Coord = &c
	}
	return d
}

// TimestampText formats the timestamp in local time
func (d *LabelDraft) TimestampText() string {
	if d == nil || d.Timestamp.IsZero() {
		return ""
	}
	return d.Timestamp.Local().Format(TimestampLayout)
}

// CoordinatesText formats the point, or returns "" when none was picked
func (d *LabelDraft) CoordinatesText() string {
	if d == nil || d.Coord == nil {
		return ""
	}
	return d.Coord.String()
}

// State is everything one browser session knows about its interaction
type State struct {
	Selection      Selection   `json:"selection"`
	Modals         Modals      `json:"modals"`
	Draft          *LabelDraft `json:"draft,omitempty"`
	IntroDismissed bool        `json:"intro_dismissed"`
}
