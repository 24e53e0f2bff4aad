package interaction

import "github.com/planet-texas-2050/sites-stories/internal/geo"

// SelectedImage is the full-size image panel
type SelectedImage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MapView is what the map widget draws
type MapView struct {
	Center  geo.LatLng   `json:"center"`
	Zoom    int          `json:"zoom"`
	Markers []geo.Marker `json:"markers"`
	Message string       `json:"message"`
}

// DraftView holds the read-only fields of the submission modal
type DraftView struct {
	Timestamp   string `json:"timestamp"`
	ImageID     string `json:"image_id"`
	Coordinates string `json:"coordinates"`
}

// View is the rendered state of one session
type View struct {
	SelectedImage *SelectedImage `json:"selected_image"`
	Map           MapView        `json:"map"`
	Modals        Modals         `json:"modals"`
	Draft         DraftView      `json:"draft"`
	CanSubmit     bool           `json:"can_submit"`
}

// View derives everything the page shows from s
func (m *Machine) View(s State) View {
	w := geo.NewWidget(m.center, m.zoom)
	w.Click(s.Selection.Coord)

	v := View{
		Map: MapView{
			Center:  w.Center,
			Zoom:    w.Zoom,
			Markers: w.Markers(),
			Message: w.Message(),
		},
		Modals:    s.Modals,
		CanSubmit: s.Selection.Ready(),
		Draft: DraftView{
			Timestamp:   s.Draft.TimestampText(),
			Coordinates: s.Draft.CoordinatesText(),
		},
	}
	if s.Draft != nil {
		v.Draft.ImageID = s.Draft.ImageID
	}

	if s.Selection.ImageID != "" {
		if rec, ok := m.images.Lookup(s.Selection.ImageID); ok {
			v.SelectedImage = &SelectedImage{ID: rec.EntryID, Title: rec.Title, URL: rec.ImageURL}
		}
	}

	return v
}
