package interaction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

// Event type names used by the browser
const (
	TypeSelectImage       = "select_image"
	TypeClickMap          = "map_click"
	TypeOpenSubmission    = "submit"
	TypeConfirmSubmission = "submit_ok"
	TypeCancelSubmission  = "submit_cancel"
	TypePageLoad          = "page_load"
	TypeDismissIntro      = "intro_ok"
	TypeOpenPoster        = "poster_open"
	TypeClosePoster       = "poster_close"
)

// Envelope is the JSON form of an event
type Envelope struct {
	Type    string   `json:"type"`
	ImageID string   `json:"image_id,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// DecodeEvent parses a JSON envelope into a typed event
func DecodeEvent(data []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid event JSON: %w", err)
	}
	return env.Event()
}

// Event converts the envelope into a typed event
func (env Envelope) Event() (Event, error) {
	switch strings.TrimSpace(env.Type) {
	case TypeSelectImage:
		id := strings.TrimSpace(env.ImageID)
		if id == "" {
			return nil, fmt.Errorf("image_id is required for %s", TypeSelectImage)
		}
		return SelectImage{ID: id}, nil
	case TypeClickMap:
		// A click without both coordinates is still a click event; the reducer
		// ignores it.
		if env.Lat == nil || env.Lng == nil {
			return ClickMap{}, nil
		}
		return ClickMap{Point: &geo.LatLng{Lat: *env.Lat, Lng: *env.Lng}}, nil
	case TypeOpenSubmission:
		return OpenSubmission{}, nil
	case TypeConfirmSubmission:
		return ConfirmSubmission{}, nil
	case TypeCancelSubmission:
		return CancelSubmission{}, nil
	case TypePageLoad:
		return PageLoad{}, nil
	case TypeDismissIntro:
		return DismissIntro{}, nil
	case TypeOpenPoster:
		return OpenPoster{}, nil
	case TypeClosePoster:
		return ClosePoster{}, nil
	case "":
		return nil, fmt.Errorf("event type is required")
	default:
		return nil, fmt.Errorf("unknown event type %q", env.Type)
	}
}
