// Package geo holds the map widget state: the last clicked point and the single
// marker drawn for it.
package geo

import (
	"fmt"
	"math"
)

// Map defaults, centered on the Rio Grande Valley
const (
	DefaultLat  = 26.903
	DefaultLng  = -98.158
	DefaultZoom = 8
)

// LatLng is a point on the map in degrees
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid reports whether the point is a finite coordinate inside the usual bounds
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// String formats the point to three decimals, e.g. "(26.903, -98.158)"
func (p LatLng) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.Lat, p.Lng)
}

// Message is the text shown under the map after a click
func Message(p LatLng) string {
	return fmt.Sprintf("You have selected a point at %.3f, %.3f", p.Lat, p.Lng)
}

// Marker is the pin drawn at the selected point
type Marker struct {
	Position LatLng `json:"position"`
	Tooltip  string `json:"tooltip"`
}

// NewMarker builds a marker with its tooltip label
func NewMarker(p LatLng) Marker {
	return Marker{Position: p, Tooltip: p.String()}
}

// Widget is the map as seen by one session. Only the latest click is kept.
type Widget struct {
	Center LatLng
	Zoom   int
	marker *Marker
}

// NewWidget creates a map widget with no marker
func NewWidget(center LatLng, zoom int) *Widget {
	return &Widget{Center: center, Zoom: zoom}
}

// Click moves the marker to p. A nil point is ignored and reports false.
func (w *Widget) Click(p *LatLng) bool {
	if p == nil {
		return false
	}
	m := NewMarker(*p)
	w.marker = &m
	return true
}

// Marker returns the current marker, if any
func (w *Widget) Marker() (Marker, bool) {
	if w.marker == nil {
		return Marker{}, false
	}
	return *w.marker, true
}

// Markers returns the marker layer contents: zero or one marker
func (w *Widget) Markers() []Marker {
	if w.marker == nil {
		return []Marker{}
	}
	return []Marker{*w.marker}
}

// Message returns the selection text, empty before the first click
func (w *Widget) Message() string {
	if w.marker == nil {
		return ""
	}
	return Message(w.marker.Position)
}
