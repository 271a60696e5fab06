// Package importer drives the bulk-paste pipeline: parse the blob,
// validate and de-duplicate each candidate, and persist the survivors
// in source order.
package importer

import (
	"context"
	"fmt"
	"log"

	"flightlog/internal/flight"
	"flightlog/internal/scrape"
	"flightlog/internal/store"
)

// FareRecorder receives accepted candidates for fare-trend archiving.
// Implemented by store.FareArchive.
type FareRecorder interface {
	RecordFares(ctx context.Context, candidates []flight.Candidate) error
}

// Importer turns pasted results pages into stored flight records.
type Importer struct {
	store   store.Store
	parser  *scrape.Parser
	archive FareRecorder
}

// Option configures an Importer.
type Option func(*Importer)

// WithArchive attaches a fare archive. Archive failures are logged,
// never surfaced: the stored flight list is the source of truth.
func WithArchive(a FareRecorder) Option {
	return func(im *Importer) { im.archive = a }
}

// New builds an Importer over the given store and parser.
func New(st store.Store, p *scrape.Parser, opts ...Option) *Importer {
	im := &Importer{store: st, parser: p}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Report tallies one import. Skipped covers rows that never became a
// record for any reason short of a store failure: no price, missing
// times, failed validation, or duplicate of a stored flight.
// StoreErrors holds verbatim persistence errors, which are the only
// per-row failures shown to the user.
type Report struct {
	Added       int
	Skipped     int
	StoreErrors []string
}

// Import processes one pasted page. It returns an error only for
// submission-fatal conditions (empty input, unrecognized prologue,
// unreadable store); everything row-local lands in the Report. Rows
// persist strictly in source order, so assigned IDs follow the page.
func (im *Importer) Import(ctx context.Context, text string) (*Report, error) {
	res, err := im.parser.Parse(text)
	if err != nil {
		return nil, err
	}

	// One read of the collection per submission; flights created
	// below are appended to the snapshot so a page that repeats a row
	// cannot store it twice.
	existing, err := im.store.AllFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}

	report := &Report{Skipped: res.Skipped}
	var accepted []flight.Candidate
	for _, c := range res.Candidates {
		if len(c.Validate()) > 0 {
			report.Skipped++
			continue
		}
		if flight.IsDuplicate(c, existing) {
			report.Skipped++
			continue
		}
		created, err := im.store.CreateFlight(ctx, c)
		if err != nil {
			report.StoreErrors = append(report.StoreErrors, err.Error())
			continue
		}
		existing = append(existing, created)
		accepted = append(accepted, c)
		report.Added++
	}

	if im.archive != nil && len(accepted) > 0 {
		if err := im.archive.RecordFares(ctx, accepted); err != nil {
			log.Printf("fare archive: %v", err)
		}
	}
	return report, nil
}
