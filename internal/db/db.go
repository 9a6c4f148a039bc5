package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/arnodenuijl/DistanceComparer-sub001/internal/retry"
	"github.com/arnodenuijl/DistanceComparer-sub001/internal/types"
)

// DB wraps the SQLite store of saved comparisons.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
	retry  retry.Config
}

// New opens (or creates) the database at dbPath and initializes the schema.
func New(dbPath string, logger *slog.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers from blocking the write path.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		retry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     500 * time.Millisecond,
			Multiplier:   2.0,
		},
	}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := db.RunMigrations(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS comparisons (
		id TEXT PRIMARY KEY,
		left_line TEXT NOT NULL,  -- JSON {start:{lat,lng}, end:{lat,lng}}
		right_line TEXT NOT NULL,
		left_meters REAL NOT NULL,
		right_meters REAL NOT NULL,
		left_display TEXT NOT NULL,
		right_display TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_comparisons_created ON comparisons(created_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveComparison persists one comparison. The write is retried briefly to
// absorb SQLITE_BUSY under concurrent saves.
func (db *DB) SaveComparison(ctx context.Context, c types.Comparison) error {
	leftJSON, err := json.Marshal(c.Left)
	if err != nil {
		return fmt.Errorf("failed to encode left line: %w", err)
	}
	rightJSON, err := json.Marshal(c.Right)
	if err != nil {
		return fmt.Errorf("failed to encode right line: %w", err)
	}

	err = retry.Do(ctx, db.retry, func() error {
		_, execErr := db.conn.ExecContext(ctx, `
			INSERT INTO comparisons
				(id, label, left_line, right_line, left_meters, right_meters,
				 left_display, right_display, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Label, string(leftJSON), string(rightJSON),
			c.LeftMeters, c.RightMeters,
			c.LeftDisplay, c.RightDisplay, c.CreatedAt)
		if execErr != nil && isBusy(execErr) {
			db.logger.Warn("write contention, retrying", slog.Any("error", execErr))
		}
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to save comparison: %w", err)
	}

	db.logger.Debug("comparison saved", slog.String("id", c.ID))
	return nil
}

// RecentComparisons returns up to limit comparisons, newest first.
func (db *DB) RecentComparisons(ctx context.Context, limit int) ([]types.Comparison, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, label, left_line, right_line, left_meters, right_meters,
		       left_display, right_display, created_at
		FROM comparisons
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query comparisons: %w", err)
	}
	defer rows.Close()

	var out []types.Comparison
	for rows.Next() {
		var c types.Comparison
		var leftJSON, rightJSON string
		if err := rows.Scan(&c.ID, &c.Label, &leftJSON, &rightJSON,
			&c.LeftMeters, &c.RightMeters,
			&c.LeftDisplay, &c.RightDisplay, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comparison: %w", err)
		}
		if err := json.Unmarshal([]byte(leftJSON), &c.Left); err != nil {
			return nil, fmt.Errorf("corrupt left line for %s: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(rightJSON), &c.Right); err != nil {
			return nil, fmt.Errorf("corrupt right line for %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PruneOlderThan deletes comparisons created before cutoff and returns how
// many rows were removed.
func (db *DB) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		"DELETE FROM comparisons WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune comparisons: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return n, nil
}

// CountComparisons returns the number of stored comparisons.
func (db *DB) CountComparisons(ctx context.Context) (int64, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM comparisons").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count comparisons: %w", err)
	}
	return n, nil
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
