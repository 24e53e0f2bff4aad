// Package gallery turns dataset records into the clickable cards shown in the
// sidebar.
package gallery

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/planet-texas-2050/sites-stories/internal/dataset"
)

// DefaultSize is the number of cards shown when no size is configured
const DefaultSize = 10

// Entry is the display form of one image record
type Entry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Details      string `json:"details"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Markdown     string `json:"markdown"`
	HTML         string `json:"html"`
}

// Gallery is the fixed, ordered list of cards plus an index from entry ID to
// card. Click events are resolved through the index.
type Gallery struct {
	entries []Entry
	byID    map[string]int
	records *dataset.Dataset
}

// Build derives cards for the first max records of ds, in dataset order
func Build(ds *dataset.Dataset, max int) (*Gallery, error) {
	records := ds.Head(max)

	g := &Gallery{
		entries: make([]Entry, 0, len(records)),
		byID:    make(map[string]int, len(records)),
		records: ds,
	}

	md := goldmark.New()
	for _, r := range records {
		entry, err := newEntry(md, r)
		if err != nil {
			return nil, fmt.Errorf("failed to build card for %s: %w", r.EntryID, err)
		}
		if _, exists := g.byID[entry.ID]; !exists {
			g.byID[entry.ID] = len(g.entries)
		}
		g.entries = append(g.entries, entry)
	}

	return g, nil
}

func newEntry(md goldmark.Markdown, r dataset.ImageRecord) (Entry, error) {
	thumbnail := r.ImageURL + "#thumbnail"
	markdown := fmt.Sprintf("![](%s)", thumbnail)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return Entry{}, fmt.Errorf("failed to render thumbnail markdown: %w", err)
	}

	return Entry{
		ID:           r.EntryID,
		Title:        r.Title,
		Details:      r.Title + "\n  " + r.Description + "\n  " + r.EntryID,
		ImageURL:     r.ImageURL,
		ThumbnailURL: thumbnail,
		Markdown:     markdown,
		HTML:         sanitizeThumbnail(buf.String()),
	}, nil
}

// Len returns the number of cards
func (g *Gallery) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Entries returns a copy of the cards in display order
func (g *Gallery) Entries() []Entry {
	if g == nil {
		return []Entry{}
	}
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Entry returns the card for an entry ID
func (g *Gallery) Entry(id string) (Entry, bool) {
	if g == nil {
		return Entry{}, false
	}
	i, ok := g.byID[id]
	if !ok {
		return Entry{}, false
	}
	return g.entries[i], true
}

// Lookup returns the record behind a card. IDs of records that did not make
// it into the gallery are not found.
func (g *Gallery) Lookup(id string) (dataset.ImageRecord, bool) {
	if _, ok := g.Entry(id); !ok {
		return dataset.ImageRecord{}, false
	}
	return g.records.Lookup(id)
}
