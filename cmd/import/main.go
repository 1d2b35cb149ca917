// Command import loads a books CSV into the database named by DATABASE_URL.
// A SQLite database gets its schema created automatically; on Postgres and
// MySQL the tables must already exist.
package main

import (
	"context"
	"ctchen222/Book-Review/internal/api/repository"
	"ctchen222/Book-Review/internal/config"
	"ctchen222/Book-Review/internal/db"
	"ctchen222/Book-Review/internal/importer"
	"ctchen222/Book-Review/internal/logger"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("file", "books.csv", "CSV file with isbn,title,author,year rows")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-file books.csv]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "DATABASE_URL selects the database. Only SQLite gets its schema created;")
		fmt.Fprintln(flag.CommandLine.Output(), "Postgres and MySQL tables must exist before importing.")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := logger.Init(cfg.LogLevel, false); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := importer.Import(ctx, f, repository.NewBookRepository(pool))
	slog.Info("Import finished", "file", *path, "inserted", res.Inserted, "skipped", res.Skipped)
	return err
}
