// Package sqlite keeps a history of concluded sessions in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/tatianab/portal-escape/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store persists session outcomes.
type Store struct {
	sqlDB *sql.DB
}

// Entry is one stored session.
type Entry struct {
	ID             int64
	Player         string
	Result         models.Result
	Rounds         int
	JumpsRemaining int
	Coins          int
	Cloaks         int
	FinishedAt     time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the history database at path and creates the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record stores a concluded session.
func (s *Store) Record(ctx context.Context, session *models.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if session.Result == "" {
		return fmt.Errorf("session result is required")
	}
	finishedAt := session.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO outcomes (
		   player,
		   result,
		   rounds,
		   jumps_remaining,
		   coins,
		   cloaks,
		   finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.Player.Name,
		string(session.Result),
		session.Rounds,
		session.Player.JumpsRemaining,
		session.Inventory.Coins,
		session.Inventory.Cloaks,
		toMillis(finishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, player, result, rounds, jumps_remaining, coins, cloaks, finished_at
		 FROM outcomes
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			result   string
			finished int64
		)
		if err := rows.Scan(&e.ID, &e.Player, &result, &e.Rounds, &e.JumpsRemaining, &e.Coins, &e.Cloaks, &finished); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		e.Result = models.Result(result)
		e.FinishedAt = fromMillis(finished)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return entries, nil
}

// Stats summarises every stored session.
type Stats struct {
	Played int
	Won    int
}

// Totals counts sessions and wins.
func (s *Store) Totals(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN result = ? THEN 1 ELSE 0 END), 0) FROM outcomes`,
		string(models.ResultWon),
	).Scan(&st.Played, &st.Won)
	if err != nil {
		return Stats{}, fmt.Errorf("count outcomes: %w", err)
	}
	return st, nil
}
