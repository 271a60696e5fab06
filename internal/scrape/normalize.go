package scrape

import (
	"strconv"
	"strings"
	"time"
)

// preprocess normalizes line endings and trims the blob before any
// pattern runs against it.
func preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSpace(text)
}

// parseDateToken turns a captured date token into a calendar date in
// the given year. Tokens never carry a year and some revisions print
// the month in all caps ("APR 11"), so the token is title-cased per
// word before the reference forms are tried.
func parseDateToken(token string, forms []string, year int) (time.Time, bool) {
	token = titleCaseWords(token)
	for _, form := range forms {
		t, err := time.Parse(form, token)
		if err != nil {
			continue
		}
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// parseClock anchors a clock token like "6:00 AM" to the given date.
func parseClock(token string, date time.Time) time.Time {
	t, err := time.Parse("3:04 PM", token)
	if err != nil {
		return time.Time{}
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// normalizeRouting canonicalizes a stop phrase: the popup annotations
// the site attaches to links are dropped, and the phrase's lines are
// collapsed to a single ", "-joined string, e.g.
// "1 stop (opens popup)\nChange Planes MCI" -> "1 stop, Change Planes MCI".
func normalizeRouting(raw, popup string) string {
	raw = strings.ReplaceAll(raw, popup, "")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ", ")
}

// titleCaseWords uppercases the first letter of each space-separated
// word and lowercases the rest.
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func atoiSafe(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
