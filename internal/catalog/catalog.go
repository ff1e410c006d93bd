package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/intelligrit/listnorm/internal/model"
)

// Catalog records processing runs and per-file results via DuckDB. It
// holds run metadata only, never listing data.
type Catalog struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) the catalog database in the given data directory.
func New(dataDir string) (*Catalog, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "listnorm.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	c := &Catalog{DB: db, DataDir: dataDir}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.DB.Close()
}

func (c *Catalog) migrate() error {
	seqs := []string{
		"CREATE SEQUENCE IF NOT EXISTS runs_seq",
		"CREATE SEQUENCE IF NOT EXISTS files_seq",
	}
	for _, seq := range seqs {
		if _, err := c.DB.Exec(seq); err != nil {
			return fmt.Errorf("creating sequence: %w", err)
		}
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY DEFAULT nextval('runs_seq'),
			started_at TEXT NOT NULL,
			finished_at TEXT,
			input_dir TEXT NOT NULL,
			files_ok INTEGER NOT NULL DEFAULT 0,
			files_failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id INTEGER PRIMARY KEY DEFAULT nextval('files_seq'),
			run_id INTEGER NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			output TEXT,
			row_count INTEGER NOT NULL DEFAULT 0,
			pincodes INTEGER NOT NULL DEFAULT 0,
			cities INTEGER NOT NULL DEFAULT 0,
			states INTEGER NOT NULL DEFAULT 0,
			coordinates INTEGER NOT NULL DEFAULT 0,
			emails INTEGER NOT NULL DEFAULT 0,
			plus_codes INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			processed_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := c.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}

	return nil
}

// BeginRun inserts a new run row and returns its id.
func (c *Catalog) BeginRun(inputDir string) (int64, error) {
	var id int64
	err := c.DB.QueryRow(
		"INSERT INTO runs (started_at, input_dir) VALUES (?, ?) RETURNING id",
		time.Now().UTC().Format(time.RFC3339), inputDir,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("starting run: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run's end time and file totals.
func (c *Catalog) FinishRun(runID int64, filesOK, filesFailed int) error {
	_, err := c.DB.Exec(
		"UPDATE runs SET finished_at = ?, files_ok = ?, files_failed = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), filesOK, filesFailed, runID,
	)
	return err
}

// RecordFile stores one processed file's counters.
func (c *Catalog) RecordFile(rec model.FileRecord) error {
	if rec.ProcessedAt == "" {
		rec.ProcessedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := c.DB.Exec(
		`INSERT INTO files (run_id, name, output, row_count, pincodes, cities, states, coordinates, emails, plus_codes, error, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Name, rec.Output, rec.Rows, rec.Pincodes, rec.Cities,
		rec.States, rec.Coordinates, rec.Emails, rec.PlusCodes, rec.Error, rec.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("recording file %s: %w", rec.Name, err)
	}
	return nil
}

// RecordFailure stores a failed file with its error text.
func (c *Catalog) RecordFailure(runID int64, name string, procErr error) error {
	return c.RecordFile(model.FileRecord{
		RunID: runID,
		Name:  name,
		Error: procErr.Error(),
	})
}

// ReadSummary returns the catalog's top-level totals.
func (c *Catalog) ReadSummary() model.Summary {
	var s model.Summary
	c.DB.QueryRow("SELECT COUNT(*) FROM runs").Scan(&s.Runs)
	c.DB.QueryRow("SELECT COUNT(*) FROM files WHERE error IS NULL OR error = ''").Scan(&s.Files)
	c.DB.QueryRow("SELECT COALESCE(SUM(row_count), 0) FROM files").Scan(&s.Rows)
	c.DB.QueryRow("SELECT COUNT(*) FROM files WHERE error IS NOT NULL AND error != ''").Scan(&s.Failures)
	return s
}

// Runs lists all runs, most recent first.
func (c *Catalog) Runs() ([]model.Run, error) {
	rows, err := c.DB.Query("SELECT id, started_at, COALESCE(finished_at, ''), input_dir, files_ok, files_failed FROM runs ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.InputDir, &r.FilesOK, &r.FilesFailed); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecentFiles lists the most recently processed files, newest first.
func (c *Catalog) RecentFiles(limit int) ([]model.FileRecord, error) {
	rows, err := c.DB.Query(
		`SELECT run_id, name, COALESCE(output, ''), row_count, pincodes, cities, states, coordinates, emails, plus_codes, COALESCE(error, ''), processed_at
		FROM files ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []model.FileRecord
	for rows.Next() {
		var f model.FileRecord
		if err := rows.Scan(&f.RunID, &f.Name, &f.Output, &f.Rows, &f.Pincodes, &f.Cities,
			&f.States, &f.Coordinates, &f.Emails, &f.PlusCodes, &f.Error, &f.ProcessedAt); err != nil {
			return nil, err
		}
		recs = append(recs, f)
	}
	return recs, rows.Err()
}
