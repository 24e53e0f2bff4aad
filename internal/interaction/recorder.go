package interaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/planet-texas-2050/sites-stories/internal/geo"
)

// Label is a confirmed draft, timestamped in UTC
type Label struct {
	Timestamp time.Time   `json:"timestamp"`
	ImageID   string      `json:"image_id"`
	Coord     *geo.LatLng `json:"coord,omitempty"`
}

// Label converts the draft into the form handed to a Recorder
func (d *LabelDraft) Label() Label {
	l := Label{Timestamp: d.Timestamp.UTC(), ImageID: d.ImageID}
	if d.Coord != nil {
		c := *d.Coord
		l.Coord = &c
	}
	return l
}

// Recorder receives confirmed labels
type Recorder interface {
	Record(ctx context.Context, label Label) error
}

// LogRecorder writes confirmed labels to the log and keeps nothing
type LogRecorder struct{}

func (LogRecorder) Record(ctx context.Context, label Label) error {
	attrs := []any{
		"image_id", label.ImageID,
		"timestamp_utc", label.Timestamp.Format(time.RFC3339),
	}
	if label.Coord != nil {
		attrs = append(attrs, "lat", label.Coord.Lat, "lng", label.Coord.Lng)
	}
	slog.InfoContext(ctx, "Label submitted", attrs...)
	return nil
}
