package scrape

import (
	"strings"

	"flightlog/internal/layout"
)

// rowArea locates the span of text containing the flight rows: from
// the first row anchor through the "Price selected flight(s)" trailer,
// or to the end of the text when the trailer is absent. Returns the
// area and its start offset, or ("", -1) when the page has no rows.
func rowArea(text string, l *layout.Layout) (string, int) {
	loc := l.Rules().RowAnchor.FindStringIndex(text)
	if loc == nil {
		return "", -1
	}
	start := loc[0]
	if end := strings.Index(text[start:], l.EndMarker); end >= 0 {
		return text[start : start+end], start
	}
	return text[start:], start
}

// splitRows cuts the row area into one chunk per candidate flight.
// A chunk begins wherever a row anchor (departure and arrival clock
// times in succession) sits at a row boundary. One rule set covers the
// historical row variants: the previous row may end in its lowest fare
// or in the sold-out marker, or the anchor may open the area.
func splitRows(area string, l *layout.Layout) []string {
	if area == "" {
		return nil
	}
	anchors := l.Rules().RowAnchor.FindAllStringIndex(area, -1)
	var starts []int
	for _, loc := range anchors {
		if isRowBoundary(area, loc[0], l) {
			starts = append(starts, loc[0])
		}
	}
	if len(starts) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(starts))
	for i, s := range starts {
		end := len(area)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunks = append(chunks, area[s:end])
	}
	return chunks
}

// isRowBoundary reports whether an anchor at pos opens a new row. It
// must sit at the area start or directly after a newline, and the text
// before that newline has to end with a digit (the previous row's last
// fare) or with the sold-out marker.
func isRowBoundary(area string, pos int, l *layout.Layout) bool {
	if pos == 0 {
		return true
	}
	if area[pos-1] != '\n' {
		return false
	}
	before := strings.TrimRight(area[:pos], " \t\r\n")
	if before == "" {
		return true
	}
	if strings.HasSuffix(before, l.SoldOut) {
		return true
	}
	last := before[len(before)-1]
	return last >= '0' && last <= '9'
}
