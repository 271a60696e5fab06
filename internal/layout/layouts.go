package layout

// defaultLayouts lists the known page revisions, newest first. Order
// matters: the current revision's prologue includes the legacy header
// text, so it must be tried before the legacy layouts.
var defaultLayouts = []Layout{
	// Current revision. The prologue repeats the search form, and the
	// "From:" / "To:" entries end each place name with its airport
	// code ("Washington (Reagan National), DC - DCA"), so the codes
	// can be captured directly. The selected travel date is the one
	// calendar strip entry flagged "Selected Day".
	{
		Name: "current",
		Route: `(?s)From:[^\n]*\n{PLACE} - (?P<origin>{CODE})[ \t]*\n` +
			`.*?To:[^\n]*\n{PLACE} - (?P<destination>{CODE})[ \t]*\n`,
		DateToken: `(?m)^[ \t]*(?P<date>[^\n]+?) Selected Day[ \t]*$`,
		DateForms: []string{"January 2, Monday", "January 2"},

		RowAnchor:  `{CLOCK}\s+{CLOCK}`,
		FlightLeg:  `(\d+) \(opens popup\)`,
		ClockTime:  `{CLOCK}`,
		StopPhrase: `\d+ stops?[^\n]*(?:\n[^\n]+)?`,
		Duration:   `(\d+)h (\d{1,2})m`,
		Fare:       `\$(\d+)`,

		EndMarker:    "Price selected flight",
		SoldOut:      "Sold Out",
		NextDay:      "Next Day",
		Popup:        " (opens popup)",
		NonstopToken: "Nonstop",
	},

	// The revision before the form repeat was added. Origin and
	// destination only appear as place names in the page heading, so
	// the captures are names rather than codes.
	{
		Name: "legacy_v2",
		Route: `Select Departing Flight:\s+` +
			`(?P<origin>{PLACE}) to (?P<destination>{PLACE})\s+Modify Search`,
		DateToken: `(?m)^[ \t]*(?P<date>[^\n]+?) Selected Day[ \t]*$`,
		DateForms: []string{"January 2, Monday", "January 2"},

		RowAnchor:  `{CLOCK}\s+{CLOCK}`,
		FlightLeg:  `(\d+) \(opens popup\)`,
		ClockTime:  `{CLOCK}`,
		StopPhrase: `\d+ stops?[^\n]*(?:\n[^\n]+)?`,
		Duration:   `(\d+)h (\d{1,2})m`,
		Fare:       `\$(\d+)`,

		EndMarker:    "Price selected flight",
		SoldOut:      "Sold Out",
		NextDay:      "Next Day",
		Popup:        " (opens popup)",
		NonstopToken: "Nonstop",
	},

	// Oldest supported revision: a compact heading with bare airport
	// codes and an abbreviated all-caps date ("APR 11").
	{
		Name:      "legacy_v1",
		Route:     `Departing flight - (?P<origin>{CODE}) to (?P<destination>{CODE})\b`,
		DateToken: `\b(?P<date>(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) \d{1,2})\b`,
		DateForms: []string{"Jan 2"},

		RowAnchor:  `{CLOCK}\s+{CLOCK}`,
		FlightLeg:  `(\d+) \(opens popup\)`,
		ClockTime:  `{CLOCK}`,
		StopPhrase: `\d+ stops?[^\n]*(?:\n[^\n]+)?`,
		Duration:   `(\d+)h (\d{1,2})m`,
		Fare:       `\$(\d+)`,

		EndMarker:    "Price selected flight",
		SoldOut:      "Sold Out",
		NextDay:      "Next Day",
		Popup:        " (opens popup)",
		NonstopToken: "Nonstop",
	},
}
