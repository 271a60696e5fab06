// Package store provides persistent storage for flight records with
// an airline lookup table. SQLite backs local use; PostgreSQL backs
// production. Both implement the same Store contract.
package store

import (
	"context"
	"errors"

	"flightlog/internal/flight"
)

// ErrNotFound is returned when a flight ID does not exist.
var ErrNotFound = errors.New("flight not found")

// Store is the persistence contract consumed by the web layer and the
// importer. CreateFlight resolves the airline name against the
// airlines table and its error text is surfaced to the user verbatim.
type Store interface {
	CreateFlight(ctx context.Context, c flight.Candidate) (flight.Flight, error)
	FindFlight(ctx context.Context, id int64) (flight.Flight, error)
	AllFlights(ctx context.Context) ([]flight.Flight, error)
	UpdateFlight(ctx context.Context, id int64, c flight.Candidate) error
	DeleteFlight(ctx context.Context, id int64) error
	DeleteAllFlights(ctx context.Context) error
	Close() error
}

// seedAirlines is inserted when the schema is created so that freshly
// provisioned databases can resolve the common carriers.
var seedAirlines = []string{
	"Southwest",
	"United",
	"Delta",
	"American",
	"Alaska",
	"JetBlue",
	"Spirit",
}

const (
	dateFormat = "2006-01-02"
	timeFormat = "2006-01-02T15:04:05Z07:00"
)
