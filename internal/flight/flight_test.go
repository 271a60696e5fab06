package flight

import (
	"reflect"
	"testing"
	"time"
)

func testCandidate() Candidate {
	day := time.Date(2018, time.March, 25, 0, 0, 0, 0, time.UTC)
	return Candidate{
		Date:          day,
		Airline:       "Southwest",
		FlightNumber:  "787, 1148",
		Origin:        "DCA",
		Destination:   "SFO",
		DepartureTime: day.Add(9 * time.Hour),
		ArrivalTime:   day.Add(16*time.Hour + 35*time.Minute),
		Routing:       "1 stop, Change Planes MCI",
		TravelTime:    635,
		Price:         192,
	}
}

func TestValidateComplete(t *testing.T) {
	if errs := testCandidate().Validate(); len(errs) != 0 {
		t.Errorf("complete candidate failed validation: %v", errs)
	}
}

func TestValidateEmpty(t *testing.T) {
	want := []string{
		"Please enter the airline name.",
		"Please enter the airport you're departing from.",
		"Please enter the destination airport.",
		"Please enter the flight date.",
		"Please enter the departure time.",
		"Please enter the arrival time.",
		"Please enter the price.",
	}
	got := Candidate{}.Validate()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Validate() = %v, want %v", got, want)
	}
}

func TestValidateSingleFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Candidate)
		want   string
	}{
		{"missing airline", func(c *Candidate) { c.Airline = "" }, "Please enter the airline name."},
		{"missing origin", func(c *Candidate) { c.Origin = "" }, "Please enter the airport you're departing from."},
		{"missing destination", func(c *Candidate) { c.Destination = "" }, "Please enter the destination airport."},
		{"missing date", func(c *Candidate) { c.Date = time.Time{} }, "Please enter the flight date."},
		{"missing departure", func(c *Candidate) { c.DepartureTime = time.Time{} }, "Please enter the departure time."},
		{"missing arrival", func(c *Candidate) { c.ArrivalTime = time.Time{} }, "Please enter the arrival time."},
		{"missing price", func(c *Candidate) { c.Price = 0 }, "Please enter the price."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCandidate()
			tt.mutate(&c)
			errs := c.Validate()
			if len(errs) != 1 || errs[0] != tt.want {
				t.Errorf("Validate() = %v, want [%q]", errs, tt.want)
			}
		})
	}
}

func TestSame(t *testing.T) {
	base := testCandidate()

	if !base.Same(testCandidate()) {
		t.Error("identical candidates reported as different")
	}

	tests := []struct {
		name   string
		mutate func(*Candidate)
	}{
		{"different date", func(c *Candidate) { c.Date = c.Date.AddDate(0, 0, 1) }},
		{"different airline", func(c *Candidate) { c.Airline = "United" }},
		{"different flight number", func(c *Candidate) { c.FlightNumber = "99" }},
		{"different origin", func(c *Candidate) { c.Origin = "BWI" }},
		{"different destination", func(c *Candidate) { c.Destination = "OAK" }},
		{"different departure", func(c *Candidate) { c.DepartureTime = c.DepartureTime.Add(time.Minute) }},
		{"different arrival", func(c *Candidate) { c.ArrivalTime = c.ArrivalTime.Add(time.Minute) }},
		{"different next day flag", func(c *Candidate) { c.NextDayArrival = true }},
		{"different routing", func(c *Candidate) { c.Routing = "Nonstop" }},
		{"different travel time", func(c *Candidate) { c.TravelTime++ }},
		{"different price", func(c *Candidate) { c.Price++ }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := testCandidate()
			tt.mutate(&other)
			if base.Same(other) {
				t.Error("candidates differing in one field reported as same")
			}
		})
	}
}

func TestSameIgnoresLocation(t *testing.T) {
	base := testCandidate()
	other := testCandidate()
	loc := time.FixedZone("EST", -5*60*60)
	other.DepartureTime = other.DepartureTime.In(loc)
	other.ArrivalTime = other.ArrivalTime.In(loc)
	if !base.Same(other) {
		t.Error("same instants in different locations reported as different")
	}
}

func TestIsDuplicate(t *testing.T) {
	stored := []Flight{
		{ID: 1, Candidate: testCandidate()},
	}
	if !IsDuplicate(testCandidate(), stored) {
		t.Error("stored candidate not detected as duplicate")
	}

	later := testCandidate()
	later.Date = later.Date.AddDate(0, 0, 7)
	later.DepartureTime = later.DepartureTime.AddDate(0, 0, 7)
	later.ArrivalTime = later.ArrivalTime.AddDate(0, 0, 7)
	if IsDuplicate(later, stored) {
		t.Error("same flight a week later flagged as duplicate")
	}

	if IsDuplicate(testCandidate(), nil) {
		t.Error("duplicate reported against an empty collection")
	}
}

func TestFormatClock(t *testing.T) {
	day := time.Date(2018, time.March, 25, 9, 5, 0, 0, time.UTC)
	if got := FormatClock(day); got != "9:05 AM" {
		t.Errorf("FormatClock = %q, want %q", got, "9:05 AM")
	}
	if got := FormatClock(time.Time{}); got != "" {
		t.Errorf("FormatClock(zero) = %q, want empty", got)
	}
}

func TestFormatTravelTime(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{635, "10h 35m"},
		{480, "8h 00m"},
		{65, "1h 05m"},
		{0, "0h 00m"},
	}
	for _, tt := range tests {
		if got := FormatTravelTime(tt.minutes); got != tt.want {
			t.Errorf("FormatTravelTime(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
