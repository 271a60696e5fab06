// Package layout holds the extraction grammar for the Southwest
// results-page text, one Layout per known revision of the page. The
// site has shipped several prologue and date formats over the years;
// each revision is captured as an immutable rule set and callers try
// them in priority order instead of editing one global pattern.
package layout

import (
	"regexp"
	"strings"
)

// BasePatterns defines reusable regex fragments. Layout rule sources
// reference them with {FRAGMENT} syntax and Compile expands them.
var BasePatterns = map[string]string{
	// Three-letter IATA airport code.
	"CODE": `[A-Z]{3}`,

	// Clock time as the site prints it, e.g. "6:00 AM", "12:30 PM".
	"CLOCK": `\d{1,2}:\d{2} [AP]M`,

	// Free-text place name confined to one line, e.g.
	// "Washington (Reagan National), DC".
	"PLACE": `[^\n]+?`,
}

// Layout is one page revision's complete rule set: prologue anchors,
// date token, row delimiter, and per-field patterns. Rule sources may
// use {FRAGMENT} placeholders from BasePatterns.
type Layout struct {
	Name string

	// Route matches the prologue and must define the named groups
	// "origin" and "destination", in that order of travel.
	Route string

	// DateToken matches the search-date token; named group "date".
	DateToken string

	// DateForms are the Go reference layouts tried when parsing the
	// captured date token. None of them carry a year; the caller
	// supplies one.
	DateForms []string

	// RowAnchor recognizes the start of a flight row: the departure
	// and arrival clock times in immediate succession.
	RowAnchor string

	// FlightLeg captures one numeric leg identifier.
	FlightLeg string

	// ClockTime matches a single clock-time token.
	ClockTime string

	// StopPhrase matches a stop-count phrase and its detail line.
	StopPhrase string

	// Duration captures the hour and minute components of the travel
	// time, e.g. "10h 35m".
	Duration string

	// Fare captures the dollar amount of one fare tier.
	Fare string

	// Literal markers.
	EndMarker    string // trailer terminating the row area
	SoldOut      string // fare cell for an unavailable tier
	NextDay      string // arrival-after-midnight marker
	Popup        string // annotation the site appends to links
	NonstopToken string // explicit direct-flight marker

	rules *Rules
}

// Rules holds a layout's compiled patterns.
type Rules struct {
	Route      *regexp.Regexp
	DateToken  *regexp.Regexp
	RowAnchor  *regexp.Regexp
	FlightLeg  *regexp.Regexp
	ClockTime  *regexp.Regexp
	StopPhrase *regexp.Regexp
	Duration   *regexp.Regexp
	Fare       *regexp.Regexp
}

// Rules returns the compiled rule set. It is nil until Compile has
// been called on the owning Table.
func (l *Layout) Rules() *Rules { return l.rules }

// ExtractRoute applies the layout's prologue pattern and returns the
// origin and destination captures.
func (l *Layout) ExtractRoute(text string) (origin, destination string, ok bool) {
	m := l.rules.Route.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	for i, name := range l.rules.Route.SubexpNames() {
		switch name {
		case "origin":
			origin = strings.TrimSpace(m[i])
		case "destination":
			destination = strings.TrimSpace(m[i])
		}
	}
	return origin, destination, origin != "" && destination != ""
}

// ExtractDateToken applies the layout's date pattern and returns the
// raw token, e.g. "April 11, Wednesday" or "APR 11".
func (l *Layout) ExtractDateToken(text string) (string, bool) {
	m := l.rules.DateToken.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	for i, name := range l.rules.DateToken.SubexpNames() {
		if name == "date" {
			return strings.TrimSpace(m[i]), true
		}
	}
	return "", false
}

// Table is an ordered set of compiled layouts. The first layout whose
// prologue pattern matches a page wins.
type Table struct {
	layouts []*Layout
}

// Compile expands every {FRAGMENT} placeholder in the default layout
// definitions and compiles the rule sets.
func Compile() (*Table, error) {
	t := &Table{}
	for _, src := range defaultLayouts {
		l := src // copy; the package-level definitions stay pristine
		r := &Rules{}
		for _, p := range []struct {
			dst **regexp.Regexp
			src string
		}{
			{&r.Route, l.Route},
			{&r.DateToken, l.DateToken},
			{&r.RowAnchor, l.RowAnchor},
			{&r.FlightLeg, l.FlightLeg},
			{&r.ClockTime, l.ClockTime},
			{&r.StopPhrase, l.StopPhrase},
			{&r.Duration, l.Duration},
			{&r.Fare, l.Fare},
		} {
			re, err := regexp.Compile(expand(p.src))
			if err != nil {
				return nil, err
			}
			*p.dst = re
		}
		l.rules = r
		t.layouts = append(t.layouts, &l)
	}
	return t, nil
}

// Layouts returns the layouts in priority order.
func (t *Table) Layouts() []*Layout { return t.layouts }

// expand replaces {FRAGMENT} placeholders with their regex sources.
func expand(pattern string) string {
	result := pattern
	for name, re := range BasePatterns {
		result = strings.ReplaceAll(result, "{"+name+"}", re)
	}
	return result
}
