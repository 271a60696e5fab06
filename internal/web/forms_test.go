package web

import (
	"testing"
	"time"

	"flightlog/internal/flight"
)

func TestFormCandidate(t *testing.T) {
	v := formValues{
		Airline:       "Southwest",
		Number:        "787",
		Origin:        "DCA",
		Destination:   "SFO",
		Date:          "2018-03-25",
		DepartureTime: "09:00",
		ArrivalTime:   "4:35 PM",
		Routing:       "",
		TravelTime:    "10h 35m",
		Price:         "$192",
	}
	c := v.candidate()

	day := time.Date(2018, time.March, 25, 0, 0, 0, 0, time.UTC)
	if !c.Date.Equal(day) {
		t.Errorf("date = %v, want %v", c.Date, day)
	}
	if !c.DepartureTime.Equal(day.Add(9 * time.Hour)) {
		t.Errorf("departure = %v", c.DepartureTime)
	}
	if !c.ArrivalTime.Equal(day.Add(16*time.Hour + 35*time.Minute)) {
		t.Errorf("arrival = %v", c.ArrivalTime)
	}
	if c.Routing != "Nonstop" {
		t.Errorf("routing = %q, want Nonstop default", c.Routing)
	}
	if c.TravelTime != 635 {
		t.Errorf("travel time = %d, want 635", c.TravelTime)
	}
	if c.Price != 192 {
		t.Errorf("price = %d, want 192", c.Price)
	}
}

func TestFormCandidateNextDay(t *testing.T) {
	v := formValues{
		Date:           "2018-03-25",
		DepartureTime:  "16:00",
		ArrivalTime:    "00:50",
		NextDayArrival: true,
	}
	c := v.candidate()
	want := time.Date(2018, time.March, 26, 0, 50, 0, 0, time.UTC)
	if !c.ArrivalTime.Equal(want) {
		t.Errorf("arrival = %v, want %v", c.ArrivalTime, want)
	}
	if !c.ArrivalTime.After(c.DepartureTime) {
		t.Error("next-day arrival does not sort after departure")
	}
}

func TestFormCandidateTravelTimeVariants(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"10h 35m", 635},
		{"8h00m", 480},
		{"90", 90},
		{"", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		c := formValues{TravelTime: tt.input}.candidate()
		if c.TravelTime != tt.want {
			t.Errorf("travel time %q = %d, want %d", tt.input, c.TravelTime, tt.want)
		}
	}
}

func TestFormCandidatePriceVariants(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"$192", 192},
		{"192", 192},
		{"", 0},
		{"cheap", 0},
	}
	for _, tt := range tests {
		c := formValues{Price: tt.input}.candidate()
		if c.Price != tt.want {
			t.Errorf("price %q = %d, want %d", tt.input, c.Price, tt.want)
		}
	}
}

func TestFormFromFlightRoundTrip(t *testing.T) {
	v := formValues{
		Airline:       "Southwest",
		Number:        "787",
		Origin:        "DCA",
		Destination:   "SFO",
		Date:          "2018-03-25",
		DepartureTime: "09:00",
		ArrivalTime:   "16:35",
		Routing:       "Nonstop",
		TravelTime:    "7h 35m",
		Price:         "$192",
	}
	got := formFromFlight(flight.Flight{ID: 1, Candidate: v.candidate()})
	if got != v {
		t.Errorf("round-tripped form = %+v, want %+v", got, v)
	}
}
