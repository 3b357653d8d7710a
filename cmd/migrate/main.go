// Command migrate applies pending SQL migrations from db/ (or MIGRATIONS_DIR)
// to DB_URL. Applied files are recorded in the migrations table; each file
// and its record share one transaction.
//
// Usage: go run ./cmd/migrate [-dry-run]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}
	if err := run(context.Background(), os.Getenv("DB_URL"), migrationsDir(), *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS migrations (
	id          SERIAL PRIMARY KEY,
	migration   TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL,
	applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func migrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "db"
}

func run(ctx context.Context, dbURL, dir string, dryRun bool) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	rows, err := conn.Query(ctx, "SELECT migration FROM migrations")
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}

	pending := pendingMigrations(files, applied)
	if len(pending) == 0 {
		fmt.Println("No pending migrations.")
		return nil
	}

	for _, f := range pending {
		filename := filepath.Base(f)
		if dryRun {
			fmt.Printf("  pending: %s\n", filename)
			continue
		}
		if err := apply(ctx, conn, f); err != nil {
			return err
		}
		fmt.Printf("  applied: %s\n", filename)
	}

	if !dryRun {
		fmt.Printf("\n%d migration(s) applied.\n", len(pending))
	}
	return nil
}

// pendingMigrations returns files not yet recorded, in filename order.
func pendingMigrations(files []string, applied map[string]bool) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	var pending []string
	for _, f := range sorted {
		if !applied[filepath.Base(f)] {
			pending = append(pending, f)
		}
	}
	return pending
}

func apply(ctx context.Context, conn *pgx.Conn, path string) error {
	filename := filepath.Base(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", filename, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("run %s: %w", filename, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record %s: %w", filename, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", filename, err)
	}
	return nil
}

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
