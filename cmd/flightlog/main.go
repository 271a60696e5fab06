// Command flightlog runs the flight list web server.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"flightlog/internal/config"
	"flightlog/internal/importer"
	"flightlog/internal/scrape"
	"flightlog/internal/store"
	"flightlog/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Driver = "sqlite"
		cfg.Database.Path = *dbPath
	}

	ctx := context.Background()

	var (
		st  store.Store
		err error
	)
	switch cfg.Database.Driver {
	case "postgres":
		st, err = store.OpenPostgres(ctx, cfg.Database.Postgres)
	default:
		st, err = store.OpenSQLite(cfg.Database.Path)
	}
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	parser, err := scrape.New(scrape.WithAirline(cfg.Provider.Airline))
	if err != nil {
		log.Fatalf("compile layouts: %v", err)
	}

	var opts []importer.Option
	if cfg.Archive.Enabled {
		archive, err := store.OpenFareArchive(ctx, cfg.Archive.ClickHouse)
		if err != nil {
			log.Fatalf("open fare archive: %v", err)
		}
		defer archive.Close()
		opts = append(opts, importer.WithArchive(archive))
	}
	im := importer.New(st, parser, opts...)

	srv, err := web.NewServer(st, im)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}
	if err := srv.Run(cfg.ListenAddr); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}
