// Package scrape turns the raw text of a pasted Southwest
// search-results page into typed flight candidates. The input is one
// complete blob; parsing is a single synchronous pass with no state
// shared between invocations.
package scrape

import (
	"errors"
	"time"

	"flightlog/internal/flight"
	"flightlog/internal/layout"
)

// Fatal parse errors. Anything else that goes wrong is row-local and
// only shows up in the result counts.
var (
	// ErrEmptyInput means the pasted text was empty or whitespace.
	ErrEmptyInput = errors.New("empty results page text")

	// ErrNoRoute means no known page layout could find the
	// origin/destination prologue, so rows cannot be attributed.
	ErrNoRoute = errors.New("no known page layout matched")
)

// Parser extracts flight candidates from pasted results pages. The
// layout table is compiled once at construction and never mutated.
type Parser struct {
	table   *layout.Table
	airline string
	now     func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithAirline overrides the provider name stamped on every candidate.
func WithAirline(name string) Option {
	return func(p *Parser) { p.airline = name }
}

// WithClock overrides the clock used to resolve the year of the page's
// date token, which never carries one.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) { p.now = now }
}

// New builds a Parser with all known layouts compiled.
func New(opts ...Option) (*Parser, error) {
	table, err := layout.Compile()
	if err != nil {
		return nil, err
	}
	p := &Parser{
		table:   table,
		airline: "Southwest",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Result is the outcome of parsing one pasted page.
type Result struct {
	Layout      string             `json:"layout"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Date        time.Time          `json:"date"`
	Candidates  []flight.Candidate `json:"candidates"`
	Segmented   int                `json:"segmented"` // rows found in the page
	Skipped     int                `json:"skipped"`   // rows that produced no candidate
}

// Parse runs the full pipeline over one blob. It fails only when the
// input is empty or no layout recognizes the prologue; individual rows
// that cannot be parsed are skipped and counted, never fatal.
func (p *Parser) Parse(text string) (*Result, error) {
	text = preprocess(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	var chosen *layout.Layout
	var origin, destination string
	for _, l := range p.table.Layouts() {
		if o, d, ok := l.ExtractRoute(text); ok {
			chosen, origin, destination = l, o, d
			break
		}
	}
	if chosen == nil {
		return nil, ErrNoRoute
	}

	area, areaStart := rowArea(text, chosen)

	// The prologue is everything before the first row; the date token
	// always lives there. When no rows were found, search the whole
	// page so the result still reports the date.
	prologue := text
	if areaStart >= 0 {
		prologue = text[:areaStart]
	}

	var date time.Time
	if token, ok := chosen.ExtractDateToken(prologue); ok {
		// A missing or unparseable token leaves the date zero; every
		// row then fails validation downstream, because its times
		// cannot be anchored to a calendar day.
		date, _ = parseDateToken(token, chosen.DateForms, p.now().Year())
	}

	res := &Result{
		Layout:      chosen.Name,
		Origin:      origin,
		Destination: destination,
		Date:        date,
	}

	for _, chunk := range splitRows(area, chosen) {
		res.Segmented++
		cand, ok := p.parseRow(chunk, chosen, date)
		if !ok {
			res.Skipped++
			continue
		}
		cand.Airline = p.airline
		cand.Origin = origin
		cand.Destination = destination
		res.Candidates = append(res.Candidates, cand)
	}
	return res, nil
}
