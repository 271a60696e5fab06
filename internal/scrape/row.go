package scrape

import (
	"strings"
	"time"

	"flightlog/internal/flight"
	"flightlog/internal/layout"
)

// parseRow extracts one candidate from a row chunk. Field extractions
// are independent; the row only fails as a whole when it has no price
// (a sold-out row) or fewer than two clock times. Failed rows are
// skipped silently, never raised.
func (p *Parser) parseRow(chunk string, l *layout.Layout, date time.Time) (flight.Candidate, bool) {
	r := l.Rules()

	// Fare tiers are listed most to least expensive, so the last
	// dollar token is the lowest advertised fare. This is a scraping
	// heuristic about the source site, not a guarantee; the fare-tier
	// test pins it.
	fares := r.Fare.FindAllStringSubmatch(chunk, -1)
	if len(fares) == 0 {
		return flight.Candidate{}, false
	}
	price := atoiSafe(fares[len(fares)-1][1])

	// Routing: the first stop-count phrase plus its detail line, or
	// "Nonstop" when the row carries no stop phrase at all. The leg
	// numbers always precede the stop/nonstop marker, so the marker
	// position also bounds the flight-number scan.
	routing := l.NonstopToken
	legRegion := chunk
	if loc := r.StopPhrase.FindStringIndex(chunk); loc != nil {
		routing = normalizeRouting(chunk[loc[0]:loc[1]], l.Popup)
		legRegion = chunk[:loc[0]]
	} else if idx := strings.Index(chunk, l.NonstopToken); idx >= 0 {
		legRegion = chunk[:idx]
	}

	var numbers []string
	for _, m := range r.FlightLeg.FindAllStringSubmatch(legRegion, -1) {
		numbers = append(numbers, m[1])
	}

	times := r.ClockTime.FindAllStringIndex(chunk, -1)
	if len(times) < 2 {
		return flight.Candidate{}, false
	}
	departure := parseClock(chunk[times[0][0]:times[0][1]], date)
	arrival := parseClock(chunk[times[1][0]:times[1][1]], date)

	// A "Next Day" marker directly after the arrival time means the
	// flight lands after midnight; the stored arrival is advanced a
	// full day so it always sorts after the departure.
	nextDay := false
	rest := strings.TrimLeft(chunk[times[1][1]:], " \t\r\n")
	if strings.HasPrefix(rest, l.NextDay) {
		nextDay = true
		arrival = arrival.Add(24 * time.Hour)
	}

	travel := 0
	if m := r.Duration.FindStringSubmatch(chunk); m != nil {
		travel = atoiSafe(m[1])*60 + atoiSafe(m[2])
	}

	return flight.Candidate{
		Date:           date,
		FlightNumber:   strings.Join(numbers, ", "),
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		NextDayArrival: nextDay,
		Routing:        routing,
		TravelTime:     travel,
		Price:          price,
	}, true
}
