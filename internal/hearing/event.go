// Package hearing tracks court hearing dates: a restricted calendar-feed
// parser, a flat JSON-backed event store, and time-to-event classification
// for display.
package hearing

import "time"

// Event is one hearing. Identity for deduplication is (Start, Summary);
// location and description are carried for display only.
type Event struct {
	Summary     string    `json:"summary"`
	Start       time.Time `json:"dtstart"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Status is the render-time classification of an event against "now".
type Status int

const (
	Past Status = iota
	Imminent
	Upcoming
)

func (s Status) String() string {
	switch s {
	case Past:
		return "past"
	case Imminent:
		return "imminent"
	case Upcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

// imminentWindow is how far ahead an upcoming hearing counts as an alarm.
const imminentWindow = 24 * time.Hour

// Classify places an event relative to now: already started is past,
// starting within the next 24 hours is imminent, anything later upcoming.
func (e Event) Classify(now time.Time) Status {
	switch {
	case !e.Start.After(now):
		return Past
	case e.Start.Before(now.Add(imminentWindow)):
		return Imminent
	default:
		return Upcoming
	}
}
