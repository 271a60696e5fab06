package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flightlog/internal/flight"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// PostgresStore keeps flights in PostgreSQL. It is the production
// backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool and ensures the schema exists.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.createSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) createSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS airlines (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL,
		airline_id INTEGER NOT NULL REFERENCES airlines(id),
		flight_number TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		next_day_arrival BOOLEAN NOT NULL DEFAULT FALSE,
		routing TEXT,
		travel_time INTEGER,
		price INTEGER,
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_flights_date ON flights(date);
	CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(origin, destination);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return err
	}
	for _, name := range seedAirlines {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO airlines (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
			name); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) airlineID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM airlines WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("unknown airline %q", name)
	}
	if err != nil {
		return 0, fmt.Errorf("look up airline: %w", err)
	}
	return id, nil
}

// CreateFlight persists a candidate and returns the stored record with
// its assigned ID.
func (s *PostgresStore) CreateFlight(ctx context.Context, c flight.Candidate) (flight.Flight, error) {
	airlineID, err := s.airlineID(ctx, c.Airline)
	if err != nil {
		return flight.Flight{}, err
	}

	var id int64
	err = s.pool.QueryRow(ctx, `
		INSERT INTO flights
			(date, airline_id, flight_number, origin, destination,
			 departure_time, arrival_time, next_day_arrival,
			 routing, travel_time, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		c.Date, airlineID, c.FlightNumber, c.Origin, c.Destination,
		c.DepartureTime, c.ArrivalTime, c.NextDayArrival,
		c.Routing, c.TravelTime, c.Price).Scan(&id)
	if err != nil {
		return flight.Flight{}, fmt.Errorf("insert flight: %w", err)
	}
	return flight.Flight{ID: id, Candidate: c}, nil
}

const postgresSelect = `
	SELECT f.id, f.date, a.name, f.flight_number, f.origin, f.destination,
	       f.departure_time, f.arrival_time, f.next_day_arrival,
	       f.routing, f.travel_time, f.price
	FROM flights f JOIN airlines a ON a.id = f.airline_id`

// FindFlight fetches one flight by ID.
func (s *PostgresStore) FindFlight(ctx context.Context, id int64) (flight.Flight, error) {
	var f flight.Flight
	err := s.pool.QueryRow(ctx, postgresSelect+` WHERE f.id = $1`, id).Scan(
		&f.ID, &f.Date, &f.Airline, &f.FlightNumber, &f.Origin,
		&f.Destination, &f.DepartureTime, &f.ArrivalTime,
		&f.NextDayArrival, &f.Routing, &f.TravelTime, &f.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return flight.Flight{}, ErrNotFound
	}
	if err != nil {
		return flight.Flight{}, fmt.Errorf("find flight: %w", err)
	}
	return f, nil
}

// AllFlights returns every stored flight in insertion order.
func (s *PostgresStore) AllFlights(ctx context.Context) ([]flight.Flight, error) {
	rows, err := s.pool.Query(ctx, postgresSelect+` ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	var flights []flight.Flight
	for rows.Next() {
		var f flight.Flight
		if err := rows.Scan(
			&f.ID, &f.Date, &f.Airline, &f.FlightNumber, &f.Origin,
			&f.Destination, &f.DepartureTime, &f.ArrivalTime,
			&f.NextDayArrival, &f.Routing, &f.TravelTime, &f.Price); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// UpdateFlight replaces a stored flight's fields.
func (s *PostgresStore) UpdateFlight(ctx context.Context, id int64, c flight.Candidate) error {
	airlineID, err := s.airlineID(ctx, c.Airline)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE flights
		SET date = $1, airline_id = $2, flight_number = $3, origin = $4,
		    destination = $5, departure_time = $6, arrival_time = $7,
		    next_day_arrival = $8, routing = $9, travel_time = $10, price = $11
		WHERE id = $12`,
		c.Date, airlineID, c.FlightNumber, c.Origin, c.Destination,
		c.DepartureTime, c.ArrivalTime, c.NextDayArrival,
		c.Routing, c.TravelTime, c.Price, id)
	if err != nil {
		return fmt.Errorf("update flight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFlight removes one flight.
func (s *PostgresStore) DeleteFlight(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllFlights clears the list.
func (s *PostgresStore) DeleteAllFlights(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM flights`); err != nil {
		return fmt.Errorf("delete flights: %w", err)
	}
	return nil
}
