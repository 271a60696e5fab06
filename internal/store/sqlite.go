package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"flightlog/internal/flight"
)

// SQLiteStore keeps flights in a local SQLite database. It is the
// default backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at the given path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSQLiteSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func createSQLiteSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS airlines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		airline_id INTEGER NOT NULL REFERENCES airlines(id),
		flight_number TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_time TEXT NOT NULL,
		arrival_time TEXT NOT NULL,
		next_day_arrival INTEGER NOT NULL DEFAULT 0,
		routing TEXT,
		travel_time INTEGER,
		price INTEGER,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_flights_date ON flights(date);
	CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(origin, destination);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	for _, name := range seedAirlines {
		if _, err := db.Exec(
			`INSERT OR IGNORE INTO airlines (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) airlineID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM airlines WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("unknown airline %q", name)
	}
	if err != nil {
		return 0, fmt.Errorf("look up airline: %w", err)
	}
	return id, nil
}

// CreateFlight persists a candidate and returns the stored record with
// its assigned ID.
func (s *SQLiteStore) CreateFlight(ctx context.Context, c flight.Candidate) (flight.Flight, error) {
	airlineID, err := s.airlineID(ctx, c.Airline)
	if err != nil {
		return flight.Flight{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO flights
			(date, airline_id, flight_number, origin, destination,
			 departure_time, arrival_time, next_day_arrival,
			 routing, travel_time, price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Date.UTC().Format(dateFormat), airlineID, c.FlightNumber,
		c.Origin, c.Destination,
		c.DepartureTime.UTC().Format(timeFormat),
		c.ArrivalTime.UTC().Format(timeFormat),
		boolToInt(c.NextDayArrival), c.Routing, c.TravelTime, c.Price)
	if err != nil {
		return flight.Flight{}, fmt.Errorf("insert flight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return flight.Flight{}, fmt.Errorf("flight id: %w", err)
	}
	return flight.Flight{ID: id, Candidate: c}, nil
}

const sqliteSelect = `
	SELECT f.id, f.date, a.name, f.flight_number, f.origin, f.destination,
	       f.departure_time, f.arrival_time, f.next_day_arrival,
	       f.routing, f.travel_time, f.price
	FROM flights f JOIN airlines a ON a.id = f.airline_id`

// FindFlight fetches one flight by ID.
func (s *SQLiteStore) FindFlight(ctx context.Context, id int64) (flight.Flight, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelect+` WHERE f.id = ?`, id)
	f, err := scanFlight(row)
	if err == sql.ErrNoRows {
		return flight.Flight{}, ErrNotFound
	}
	if err != nil {
		return flight.Flight{}, fmt.Errorf("find flight: %w", err)
	}
	return f, nil
}

// AllFlights returns every stored flight in insertion order.
func (s *SQLiteStore) AllFlights(ctx context.Context) ([]flight.Flight, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelect+` ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	var flights []flight.Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// UpdateFlight replaces a stored flight's fields.
func (s *SQLiteStore) UpdateFlight(ctx context.Context, id int64, c flight.Candidate) error {
	airlineID, err := s.airlineID(ctx, c.Airline)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE flights
		SET date = ?, airline_id = ?, flight_number = ?, origin = ?,
		    destination = ?, departure_time = ?, arrival_time = ?,
		    next_day_arrival = ?, routing = ?, travel_time = ?, price = ?
		WHERE id = ?`,
		c.Date.UTC().Format(dateFormat), airlineID, c.FlightNumber,
		c.Origin, c.Destination,
		c.DepartureTime.UTC().Format(timeFormat),
		c.ArrivalTime.UTC().Format(timeFormat),
		boolToInt(c.NextDayArrival), c.Routing, c.TravelTime, c.Price, id)
	if err != nil {
		return fmt.Errorf("update flight: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFlight removes one flight.
func (s *SQLiteStore) DeleteFlight(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM flights WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllFlights clears the list.
func (s *SQLiteStore) DeleteAllFlights(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM flights`); err != nil {
		return fmt.Errorf("delete flights: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(sc scanner) (flight.Flight, error) {
	var (
		f              flight.Flight
		date, dep, arr string
		nextDay        int
	)
	err := sc.Scan(&f.ID, &date, &f.Airline, &f.FlightNumber,
		&f.Origin, &f.Destination, &dep, &arr, &nextDay,
		&f.Routing, &f.TravelTime, &f.Price)
	if err != nil {
		return flight.Flight{}, err
	}
	if f.Date, err = time.Parse(dateFormat, date); err != nil {
		return flight.Flight{}, fmt.Errorf("parse date: %w", err)
	}
	if f.DepartureTime, err = time.Parse(timeFormat, dep); err != nil {
		return flight.Flight{}, fmt.Errorf("parse departure time: %w", err)
	}
	if f.ArrivalTime, err = time.Parse(timeFormat, arr); err != nil {
		return flight.Flight{}, fmt.Errorf("parse arrival time: %w", err)
	}
	f.NextDayArrival = nextDay != 0
	return f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
