package web

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flightlog/internal/flight"
)

var travelTimeRE = regexp.MustCompile(`^(\d+)h\s*(\d{1,2})m$`)

// formValues holds the raw manual-entry form fields so a failed
// submission can re-render with what the user typed.
type formValues struct {
	Airline        string
	Number         string
	Origin         string
	Destination    string
	Date           string
	DepartureTime  string
	ArrivalTime    string
	NextDayArrival bool
	Routing        string
	TravelTime     string
	Price          string
}

func readForm(r *http.Request) formValues {
	return formValues{
		Airline:        strings.TrimSpace(r.PostFormValue("airline")),
		Number:         strings.TrimSpace(r.PostFormValue("number")),
		Origin:         strings.TrimSpace(r.PostFormValue("origin")),
		Destination:    strings.TrimSpace(r.PostFormValue("destination")),
		Date:           strings.TrimSpace(r.PostFormValue("date")),
		DepartureTime:  strings.TrimSpace(r.PostFormValue("departure_time")),
		ArrivalTime:    strings.TrimSpace(r.PostFormValue("arrival_time")),
		NextDayArrival: r.PostFormValue("next_day_arrival") != "",
		Routing:        strings.TrimSpace(r.PostFormValue("routing")),
		TravelTime:     strings.TrimSpace(r.PostFormValue("travel_time")),
		Price:          strings.TrimSpace(r.PostFormValue("price")),
	}
}

// candidate converts the typed form into a flight candidate using the
// same normalization rules as the paste importer: times anchor to the
// flight date, a next-day arrival is advanced a full day, travel time
// becomes minutes, and the price loses its currency symbol.
func (v formValues) candidate() flight.Candidate {
	c := flight.Candidate{
		Airline:        v.Airline,
		FlightNumber:   v.Number,
		Origin:         v.Origin,
		Destination:    v.Destination,
		NextDayArrival: v.NextDayArrival,
		Routing:        v.Routing,
	}
	if v.Routing == "" {
		c.Routing = "Nonstop"
	}
	if d, err := time.Parse("2006-01-02", v.Date); err == nil {
		c.Date = d
	}
	c.DepartureTime = parseFormClock(v.DepartureTime, c.Date)
	c.ArrivalTime = parseFormClock(v.ArrivalTime, c.Date)
	if v.NextDayArrival && !c.ArrivalTime.IsZero() {
		c.ArrivalTime = c.ArrivalTime.Add(24 * time.Hour)
	}
	if m := travelTimeRE.FindStringSubmatch(v.TravelTime); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		c.TravelTime = h*60 + min
	} else if n, err := strconv.Atoi(v.TravelTime); err == nil {
		c.TravelTime = n
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(v.Price, "$")); err == nil {
		c.Price = n
	}
	return c
}

// parseFormClock accepts the time input's 24-hour "15:04" form and the
// site's "3:04 PM" form.
func parseFormClock(s string, date time.Time) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, form := range []string{"15:04", "3:04 PM"} {
		if t, err := time.Parse(form, s); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// formFromFlight pre-fills the edit form from a stored record.
func formFromFlight(f flight.Flight) formValues {
	return formValues{
		Airline:        f.Airline,
		Number:         f.FlightNumber,
		Origin:         f.Origin,
		Destination:    f.Destination,
		Date:           f.Date.Format("2006-01-02"),
		DepartureTime:  f.DepartureTime.Format("15:04"),
		ArrivalTime:    f.ArrivalTime.Format("15:04"),
		NextDayArrival: f.NextDayArrival,
		Routing:        f.Routing,
		TravelTime:     flight.FormatTravelTime(f.TravelTime),
		Price:          "$" + strconv.Itoa(f.Price),
	}
}
