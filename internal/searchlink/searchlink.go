// Package searchlink builds outbound Southwest search URLs so a saved
// route can be re-shopped with one click.
package searchlink

import (
	"net/url"
	"time"
)

const baseURL = "https://www.southwest.com/air/booking/select.html"

// Link pairs a route with its search URL.
type Link struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	URL         string `json:"url"`
}

// Build returns the search URL for one origin/destination pair on the
// given travel date.
func Build(origin, destination string, date time.Time) string {
	values := url.Values{}
	values.Set("originationAirportCode", origin)
	values.Set("destinationAirportCode", destination)
	values.Set("departureDate", date.Format("2006-01-02"))
	values.Set("tripType", "oneway")
	values.Set("adultPassengersCount", "1")
	return baseURL + "?" + values.Encode()
}

// Links returns one link per origin/destination combination, in the
// order given. A city selection can expand to several airports, so
// both sides accept lists.
func Links(origins, destinations []string, date time.Time) []Link {
	var links []Link
	for _, o := range origins {
		for _, d := range destinations {
			links = append(links, Link{
				Origin:      o,
				Destination: d,
				URL:         Build(o, d, date),
			})
		}
	}
	return links
}
