package importer

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"flightlog/internal/flight"
	"flightlog/internal/scrape"
	"flightlog/internal/store"
)

// memStore is an in-memory Store for exercising the import pipeline
// without a database.
type memStore struct {
	flights   []flight.Flight
	nextID    int64
	createErr error
}

var _ store.Store = (*memStore)(nil)

func (m *memStore) CreateFlight(_ context.Context, c flight.Candidate) (flight.Flight, error) {
	if m.createErr != nil {
		return flight.Flight{}, m.createErr
	}
	m.nextID++
	f := flight.Flight{ID: m.nextID, Candidate: c}
	m.flights = append(m.flights, f)
	return f, nil
}

func (m *memStore) FindFlight(_ context.Context, id int64) (flight.Flight, error) {
	for _, f := range m.flights {
		if f.ID == id {
			return f, nil
		}
	}
	return flight.Flight{}, store.ErrNotFound
}

func (m *memStore) AllFlights(_ context.Context) ([]flight.Flight, error) {
	return append([]flight.Flight(nil), m.flights...), nil
}

func (m *memStore) UpdateFlight(_ context.Context, id int64, c flight.Candidate) error {
	for i, f := range m.flights {
		if f.ID == id {
			m.flights[i].Candidate = c
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) DeleteFlight(_ context.Context, id int64) error {
	for i, f := range m.flights {
		if f.ID == id {
			m.flights = append(m.flights[:i], m.flights[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memStore) DeleteAllFlights(context.Context) error {
	m.flights = nil
	return nil
}

func (m *memStore) Close() error { return nil }

// recorder captures fare-archive calls.
type recorder struct {
	candidates []flight.Candidate
	err        error
}

func (r *recorder) RecordFares(_ context.Context, cs []flight.Candidate) error {
	r.candidates = append(r.candidates, cs...)
	return r.err
}

func testParser(t *testing.T) *scrape.Parser {
	t.Helper()
	p, err := scrape.New(scrape.WithClock(func() time.Time {
		return time.Date(2018, time.March, 1, 12, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("scrape.New: %v", err)
	}
	return p
}

func samplePage(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../scrape/testdata/results_page.txt")
	if err != nil {
		t.Fatalf("read sample page: %v", err)
	}
	return string(data)
}

func TestImportSamplePage(t *testing.T) {
	st := &memStore{}
	im := New(st, testParser(t))

	report, err := im.Import(context.Background(), samplePage(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Added != 11 {
		t.Errorf("added = %d, want 11", report.Added)
	}
	if report.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", report.Skipped)
	}
	if len(report.StoreErrors) != 0 {
		t.Errorf("store errors = %v, want none", report.StoreErrors)
	}
	if len(st.flights) != 11 {
		t.Fatalf("store has %d flights, want 11", len(st.flights))
	}
	// IDs follow page order.
	if st.flights[0].FlightNumber != "5747, 1920" {
		t.Errorf("first stored flight = %q", st.flights[0].FlightNumber)
	}
	if st.flights[10].FlightNumber != "5513, 309" {
		t.Errorf("last stored flight = %q", st.flights[10].FlightNumber)
	}
}

func TestImportTwiceAddsNothing(t *testing.T) {
	st := &memStore{}
	im := New(st, testParser(t))
	ctx := context.Background()
	text := samplePage(t)

	if _, err := im.Import(ctx, text); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	report, err := im.Import(ctx, text)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if report.Added != 0 {
		t.Errorf("second import added = %d, want 0", report.Added)
	}
	if report.Skipped != 11 {
		t.Errorf("second import skipped = %d, want 11", report.Skipped)
	}
	if len(st.flights) != 11 {
		t.Errorf("store has %d flights, want 11", len(st.flights))
	}
}

func TestImportRepeatedRowWithinPage(t *testing.T) {
	row := `6:00 AM
8:10 AM
100 (opens popup)
Nonstop
2h 10m
 $300
 $250
 $150
`
	text := `Select Departing Flight:
Washington (Reagan National), DC to St. Louis, MO
Modify Search
From: Enter departure city or airport code
Washington (Reagan National), DC - DCA
To: Enter arrival city or airport code
St. Louis, MO - STL
April 11, Wednesday Selected Day
` + row + row + "Price selected flight(s)\n"

	st := &memStore{}
	im := New(st, testParser(t))
	report, err := im.Import(context.Background(), text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Added != 1 {
		t.Errorf("added = %d, want 1", report.Added)
	}
	if report.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", report.Skipped)
	}
	if len(st.flights) != 1 {
		t.Errorf("store has %d flights, want 1", len(st.flights))
	}
}

func TestImportStoreErrorsReported(t *testing.T) {
	st := &memStore{createErr: errors.New(`unknown airline "Southwest"`)}
	im := New(st, testParser(t))

	report, err := im.Import(context.Background(), samplePage(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Added != 0 {
		t.Errorf("added = %d, want 0", report.Added)
	}
	if len(report.StoreErrors) != 11 {
		t.Fatalf("got %d store errors, want 11", len(report.StoreErrors))
	}
	if !strings.Contains(report.StoreErrors[0], `unknown airline "Southwest"`) {
		t.Errorf("store error = %q, want the store's wording", report.StoreErrors[0])
	}
}

func TestImportFatalErrors(t *testing.T) {
	im := New(&memStore{}, testParser(t))
	ctx := context.Background()

	if _, err := im.Import(ctx, "   "); !errors.Is(err, scrape.ErrEmptyInput) {
		t.Errorf("empty input error = %v, want ErrEmptyInput", err)
	}
	if _, err := im.Import(ctx, "unrelated text\nacross lines\n"); !errors.Is(err, scrape.ErrNoRoute) {
		t.Errorf("unrecognized input error = %v, want ErrNoRoute", err)
	}
}

func TestImportSkipsInvalidCandidates(t *testing.T) {
	// Losing the selected-day marker leaves every candidate without a
	// date, so validation rejects the lot.
	text := strings.Replace(samplePage(t), "April 11, Wednesday Selected Day\n", "", 1)
	st := &memStore{}
	im := New(st, testParser(t))

	report, err := im.Import(context.Background(), text)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Added != 0 {
		t.Errorf("added = %d, want 0", report.Added)
	}
	if report.Skipped != 11 {
		t.Errorf("skipped = %d, want 11", report.Skipped)
	}
	if len(st.flights) != 0 {
		t.Errorf("store has %d flights, want 0", len(st.flights))
	}
}

func TestImportRecordsFares(t *testing.T) {
	st := &memStore{}
	rec := &recorder{}
	im := New(st, testParser(t), WithArchive(rec))

	if _, err := im.Import(context.Background(), samplePage(t)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(rec.candidates) != 11 {
		t.Errorf("archive received %d candidates, want 11", len(rec.candidates))
	}
}

func TestImportArchiveFailureIsNotFatal(t *testing.T) {
	st := &memStore{}
	rec := &recorder{err: errors.New("clickhouse down")}
	im := New(st, testParser(t), WithArchive(rec))

	report, err := im.Import(context.Background(), samplePage(t))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Added != 11 {
		t.Errorf("added = %d, want 11", report.Added)
	}
}
