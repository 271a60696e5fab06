// Package flight defines the flight record model shared by the manual
// entry form and the results-page importer, along with the validation
// and duplicate rules both entry paths use.
package flight

import (
	"fmt"
	"time"
)

// Candidate is a flight that has been parsed or typed in but not yet
// validated and persisted. A candidate either becomes a stored Flight
// or is discarded; it is never mutated after creation.
type Candidate struct {
	Date           time.Time `json:"date"`
	Airline        string    `json:"airline"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	NextDayArrival bool      `json:"next_day_arrival"`
	Routing        string    `json:"routing"`
	TravelTime     int       `json:"travel_time"` // minutes
	Price          int       `json:"price"`       // whole dollars
}

// Flight is a persisted candidate. The ID is assigned by the store.
type Flight struct {
	ID int64 `json:"id"`
	Candidate
}

// Validate returns the user-facing problems with a candidate. An empty
// slice means the candidate is complete enough to persist.
func (c Candidate) Validate() []string {
	var errs []string
	if c.Airline == "" {
		errs = append(errs, "Please enter the airline name.")
	}
	if c.Origin == "" {
		errs = append(errs, "Please enter the airport you're departing from.")
	}
	if c.Destination == "" {
		errs = append(errs, "Please enter the destination airport.")
	}
	if c.Date.IsZero() {
		errs = append(errs, "Please enter the flight date.")
	}
	if c.DepartureTime.IsZero() {
		errs = append(errs, "Please enter the departure time.")
	}
	if c.ArrivalTime.IsZero() {
		errs = append(errs, "Please enter the arrival time.")
	}
	if c.Price == 0 {
		errs = append(errs, "Please enter the price.")
	}
	return errs
}

// Same reports whether two candidates describe the same itinerary.
// Every field participates, so the same flight on a different date is
// not a duplicate. Times compare by instant, not by location.
func (c Candidate) Same(o Candidate) bool {
	return c.Date.Equal(o.Date) &&
		c.Airline == o.Airline &&
		c.FlightNumber == o.FlightNumber &&
		c.Origin == o.Origin &&
		c.Destination == o.Destination &&
		c.DepartureTime.Equal(o.DepartureTime) &&
		c.ArrivalTime.Equal(o.ArrivalTime) &&
		c.NextDayArrival == o.NextDayArrival &&
		c.Routing == o.Routing &&
		c.TravelTime == o.TravelTime &&
		c.Price == o.Price
}

// IsDuplicate reports whether the candidate already appears in the
// stored collection. This single predicate backs both the manual
// form's "That flight is already on your list." rule and the paste
// importer's duplicate filter.
func IsDuplicate(c Candidate, existing []Flight) bool {
	for _, f := range existing {
		if c.Same(f.Candidate) {
			return true
		}
	}
	return false
}

// FormatClock renders a time the way the list UI shows it, e.g.
// "6:00 AM".
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("3:04 PM")
}

// FormatTravelTime renders minutes as the source site's "Xh Ym" form.
func FormatTravelTime(minutes int) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
