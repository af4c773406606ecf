package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
	// Fixed-width so started_at_utc sorts lexicographically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store persists run summaries in a local SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores run and its per-file totals. An empty ID is replaced by a
// fresh UUID.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	run.Project = strings.TrimSpace(run.Project)
	if run.Project == "" {
		run.Project = "default"
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	return s.withRetry("save run", func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO runs (
  id, project, started_at_utc, duration_ms, unit_count, candidate_count,
  unused_count, unknown_count, line_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.Project,
			run.StartedAt.UTC().Format(timeLayout),
			run.Duration.Milliseconds(),
			run.Units,
			run.Candidates,
			run.Unused,
			run.Unknown,
			run.Lines,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		for _, f := range run.Files {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO run_files (run_id, path, symbol_count, line_count) VALUES (?, ?, ?, ?)`,
				run.ID, f.Path, f.Symbols, f.Lines,
			); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
}

// LatestRuns returns up to limit runs for project, newest first.
func (s *Store) LatestRuns(ctx context.Context, project string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project = strings.TrimSpace(project)
	if project == "" {
		project = "default"
	}
	if limit <= 0 {
		limit = 1
	}

	var runs []Run
	err := s.withRetry("load runs", func() error {
		runs = runs[:0]
		rows, err := s.db.QueryContext(ctx, `
SELECT id, project, started_at_utc, duration_ms, unit_count, candidate_count,
  unused_count, unknown_count, line_count
FROM runs
WHERE project = ?
ORDER BY started_at_utc DESC, created_at_utc DESC
LIMIT ?`, project, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				run       Run
				startedAt string
				duration  int64
			)
			if err := rows.Scan(&run.ID, &run.Project, &startedAt, &duration, &run.Units,
				&run.Candidates, &run.Unused, &run.Unknown, &run.Lines); err != nil {
				return err
			}
			ts, err := time.Parse(timeLayout, startedAt)
			if err != nil {
				return fmt.Errorf("parse started_at_utc %q: %w", startedAt, err)
			}
			run.StartedAt = ts
			run.Duration = time.Duration(duration) * time.Millisecond
			runs = append(runs, run)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	for i := range runs {
		files, err := s.loadFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (s *Store) loadFiles(ctx context.Context, runID string) ([]FileTotal, error) {
	var files []FileTotal
	err := s.withRetry("load run files", func() error {
		files = files[:0]
		rows, err := s.db.QueryContext(ctx,
			`SELECT path, symbol_count, line_count FROM run_files WHERE run_id = ? ORDER BY path`, runID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var f FileTotal
			if err := rows.Scan(&f.Path, &f.Symbols, &f.Lines); err != nil {
				return err
			}
			files = append(files, f)
		}
		return rows.Err()
	})
	return files, err
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
