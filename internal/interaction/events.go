package interaction

import "github.com/planet-texas-2050/sites-stories/internal/geo"

// Event is one user action. The set of events is closed: only the types in
// this file implement it.
type Event interface {
	isEvent()
}

// SelectImage is a click on a gallery card
type SelectImage struct {
	ID string
}

// ClickMap is a click on the map. Point is nil when the widget fired without a
// coordinate.
type ClickMap struct {
	Point *geo.LatLng
}

// OpenSubmission is the "Submit" button under the map
type OpenSubmission struct{}

// ConfirmSubmission is the "Submit" button inside the submission modal
type ConfirmSubmission struct{}

// CancelSubmission is the "Cancel" button inside the submission modal
type CancelSubmission struct{}

// PageLoad fires whenever the page is (re)loaded in a session
type PageLoad struct{}

// DismissIntro is the "OK" button of the introductory modal
type DismissIntro struct{}

// OpenPoster is the "Explanation of work" button in the footer
type OpenPoster struct{}

// ClosePoster is the "Close" button of the poster modal
type ClosePoster struct{}

func (SelectImage) isEvent()       {}
func (ClickMap) isEvent()          {}
func (OpenSubmission) isEvent()    {}
func (ConfirmSubmission) isEvent() {}
func (CancelSubmission) isEvent()  {}
func (PageLoad) isEvent()          {}
func (DismissIntro) isEvent()      {}
func (OpenPoster) isEvent()        {}
func (ClosePoster) isEvent()       {}
