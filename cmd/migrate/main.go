package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/LevelBot_Go/internal/bootstrap"
	"github.com/osse101/LevelBot_Go/internal/config"
	"github.com/osse101/LevelBot_Go/internal/progress"
	"github.com/osse101/LevelBot_Go/internal/validation"
)

func main() {
	importPath := flag.String("import", "", "legacy userdata.json to copy into the configured backend")
	createDB := flag.Bool("create-db", true, "create the postgres database if it does not exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.Backend == config.BackendPostgres && *createDB {
		if err := ensureDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}
	}

	// opening the postgres backend applies pending migrations
	st, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()
	fmt.Printf("Storage %s is ready.\n", st.Backend.Name())

	if *importPath == "" {
		return
	}

	n, err := importSnapshot(ctx, *importPath, st.Backend)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	fmt.Printf("Imported %d users from %s.\n", n, *importPath)
}

// ensureDatabase creates cfg.DBName through the server's default database
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("unable to connect to postgres database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

// importSnapshot checks a legacy blob against the snapshot schema and
// stores it in backend
func importSnapshot(ctx context.Context, path string, backend progress.Backend) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if err := validation.ValidateSnapshot(data); err != nil {
		return 0, err
	}
	snap, err := progress.Decode(data)
	if err != nil {
		return 0, err
	}
	encoded, err := progress.Encode(snap)
	if err != nil {
		return 0, err
	}
	if err := backend.Save(ctx, encoded); err != nil {
		return 0, err
	}
	return len(snap), nil
}
