package bench

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists benchmark runs in a sqlite database so sessions taken
// at different times (or against different engine builds) can be
// compared later.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the run database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS bench_runs (
			run_id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			platform TEXT,
			go_version TEXT,
			cpu_count INT
		);
		CREATE TABLE IF NOT EXISTS bench_results (
			run_id TEXT NOT NULL,
			benchmark TEXT NOT NULL,
			mean_ms DOUBLE NOT NULL,
			std_ms DOUBLE NOT NULL,
			min_ms DOUBLE NOT NULL,
			max_ms DOUBLE NOT NULL,
			iterations INT NOT NULL,
			input_vertices INT,
			input_faces INT,
			samples_json TEXT,
			PRIMARY KEY (run_id, benchmark),
			FOREIGN KEY (run_id) REFERENCES bench_runs(run_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create run schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun persists a run and all its results. If RunID is empty, a
// UUID is generated; if CreatedAt is zero, the current time is used.
func (s *Store) InsertRun(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO bench_runs (run_id, label, created_at, platform, go_version, cpu_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Label, run.CreatedAt, run.Platform, run.GoVersion, run.CPUCount)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for name, result := range run.Results {
		samples, err := json.Marshal(result.SamplesMs)
		if err != nil {
			return fmt.Errorf("marshal samples for %s: %w", name, err)
		}
		_, err = tx.Exec(`
			INSERT INTO bench_results (
				run_id, benchmark, mean_ms, std_ms, min_ms, max_ms,
				iterations, input_vertices, input_faces, samples_json
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, name, result.MeanMs, result.StdMs, result.MinMs, result.MaxMs,
			result.Iterations, result.InputVertices, result.InputFaces, string(samples))
		if err != nil {
			return fmt.Errorf("insert result %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// GetRun returns the run with the given ID, results included.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, label, created_at, platform, go_version, cpu_count
		FROM bench_runs WHERE run_id = ?`, runID)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadResults(run); err != nil {
		return nil, err
	}
	return run, nil
}

// FindByLabel returns the most recent run with the given label.
func (s *Store) FindByLabel(label string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, label, created_at, platform, go_version, cpu_count
		FROM bench_runs WHERE label = ?
		ORDER BY created_at DESC LIMIT 1`, label)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadResults(run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns all runs, newest first, without their results.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, label, created_at, platform, go_version, cpu_count
		FROM bench_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	run := &Run{Results: make(map[string]Result)}
	err := row.Scan(&run.RunID, &run.Label, &run.CreatedAt, &run.Platform, &run.GoVersion, &run.CPUCount)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}

func (s *Store) loadResults(run *Run) error {
	rows, err := s.db.Query(`
		SELECT benchmark, mean_ms, std_ms, min_ms, max_ms,
		       iterations, input_vertices, input_faces, samples_json
		FROM bench_results WHERE run_id = ?`, run.RunID)
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, samplesJSON string
		var result Result
		err := rows.Scan(&name, &result.MeanMs, &result.StdMs, &result.MinMs, &result.MaxMs,
			&result.Iterations, &result.InputVertices, &result.InputFaces, &samplesJSON)
		if err != nil {
			return fmt.Errorf("scan result: %w", err)
		}
		if samplesJSON != "" {
			if err := json.Unmarshal([]byte(samplesJSON), &result.SamplesMs); err != nil {
				return fmt.Errorf("unmarshal samples for %s: %w", name, err)
			}
		}
		run.Results[name] = result
	}
	return rows.Err()
}
