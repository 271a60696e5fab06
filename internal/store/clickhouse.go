package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"flightlog/internal/flight"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// FareArchive records a snapshot of every accepted candidate's fare in
// ClickHouse so that fare trends for a route can be queried over time.
// Archiving is best-effort: an import never fails because the archive
// write did.
type FareArchive struct {
	conn driver.Conn
}

// OpenFareArchive opens a ClickHouse connection and ensures the
// snapshot table exists.
func OpenFareArchive(ctx context.Context, cfg ClickHouseConfig) (*FareArchive, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	a := &FareArchive{conn: conn}
	if err := a.createSchema(ctx); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return a, nil
}

// Close closes the ClickHouse connection.
func (a *FareArchive) Close() error {
	return a.conn.Close()
}

func (a *FareArchive) createSchema(ctx context.Context) error {
	return a.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS fare_snapshots (
			captured_at   DateTime,
			flight_date   Date,
			origin        String,
			destination   String,
			flight_number String,
			routing       String,
			travel_time   UInt32,
			price         UInt32
		)
		ENGINE = MergeTree()
		ORDER BY (origin, destination, flight_date, captured_at)
	`)
}

// RecordFares batch-inserts one snapshot row per candidate.
func (a *FareArchive) RecordFares(ctx context.Context, candidates []flight.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO fare_snapshots
			(captured_at, flight_date, origin, destination,
			 flight_number, routing, travel_time, price)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	now := time.Now().UTC()
	for _, c := range candidates {
		if err := batch.Append(now, c.Date, c.Origin, c.Destination,
			c.FlightNumber, c.Routing,
			uint32(c.TravelTime), uint32(c.Price)); err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// LowestFare returns the cheapest recorded price for a route and
// travel date across all snapshots, or 0 when none exist.
func (a *FareArchive) LowestFare(ctx context.Context, origin, destination string, date time.Time) (int, error) {
	var price uint32
	err := a.conn.QueryRow(ctx, `
		SELECT min(price)
		FROM fare_snapshots
		WHERE origin = ? AND destination = ? AND flight_date = ?`,
		origin, destination, date).Scan(&price)
	if err != nil {
		return 0, fmt.Errorf("query lowest fare: %w", err)
	}
	return int(price), nil
}
