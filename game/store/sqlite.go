package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path, creating
// parent directories and running schema migration as needed.
func Open(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}

	return s, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			player1 TEXT NOT NULL DEFAULT '',
			player2 TEXT NOT NULL DEFAULT '',
			disk_count INTEGER NOT NULL,
			start_time DATETIME,
			end_time DATETIME,
			winner TEXT NOT NULL DEFAULT '',
			player1_moves INTEGER NOT NULL DEFAULT 0,
			player2_moves INTEGER NOT NULL DEFAULT 0,
			player1_score REAL NOT NULL DEFAULT 0,
			player2_score REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_matches_pending ON matches(end_time) WHERE end_time IS NULL;

		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			match_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			UNIQUE(name, match_id)
		);

		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			score REAL NOT NULL DEFAULT 0,
			time REAL NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			match_id TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard_entries(score DESC, time ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateMatch inserts a new match record.
func (s *SQLiteStore) CreateMatch(ctx context.Context, m *Match) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, player1, player2, disk_count, start_time, end_time, winner,
			player1_moves, player2_moves, player1_score, player2_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Player1, m.Player2, m.DiskCount, m.StartTime, m.EndTime, m.Winner,
		m.Player1Moves, m.Player2Moves, m.Player1Score, m.Player2Score, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: insert match: %w", err)
	}
	return nil
}

// GetMatch retrieves a match by ID, returning ErrNotFound when absent.
func (s *SQLiteStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player1, player2, disk_count, start_time, end_time, winner,
			player1_moves, player2_moves, player1_score, player2_score, created_at, updated_at
		FROM matches WHERE id = ?`, id)

	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get match: %w", err)
	}
	return m, nil
}

// UpdateMatch writes the full match record back.
func (s *SQLiteStore) UpdateMatch(ctx context.Context, m *Match) error {
	m.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE matches SET player1 = ?, player2 = ?, disk_count = ?, start_time = ?, end_time = ?,
			winner = ?, player1_moves = ?, player2_moves = ?, player1_score = ?, player2_score = ?,
			updated_at = ?
		WHERE id = ?`,
		m.Player1, m.Player2, m.DiskCount, m.StartTime, m.EndTime, m.Winner,
		m.Player1Moves, m.Player2Moves, m.Player1Score, m.Player2Score, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("store: update match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMatches returns matches newest-first.
func (s *SQLiteStore) ListMatches(ctx context.Context, limit int) ([]*Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player1, player2, disk_count, start_time, end_time, winner,
			player1_moves, player2_moves, player1_score, player2_score, created_at, updated_at
		FROM matches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// ListPendingMatches returns matches that have no end time yet.
func (s *SQLiteStore) ListPendingMatches(ctx context.Context) ([]*Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player1, player2, disk_count, start_time, end_time, winner,
			player1_moves, player2_moves, player1_score, player2_score, created_at, updated_at
		FROM matches WHERE end_time IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list pending matches: %w", err)
	}
	defer rows.Close()

	return collectMatches(rows)
}

// UpsertUser records the player name's membership in a match.
func (s *SQLiteStore) UpsertUser(ctx context.Context, name, matchID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (name, match_id, created_at) VALUES (?, ?, ?)
		ON CONFLICT(name, match_id) DO NOTHING`,
		name, matchID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store: upsert user: %w", err)
	}
	return nil
}

// AppendLeaderboardEntry inserts one winner row.
func (s *SQLiteStore) AppendLeaderboardEntry(ctx context.Context, e *LeaderboardEntry) error {
	e.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_entries (player_name, score, time, moves, match_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.PlayerName, e.Score, e.Time, e.Moves, e.MatchID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: append leaderboard entry: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListLeaderboard returns entries ranked by score descending, time ascending.
func (s *SQLiteStore) ListLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, score, time, moves, match_id, created_at
		FROM leaderboard_entries ORDER BY score DESC, time ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*LeaderboardEntry
	for rows.Next() {
		e := &LeaderboardEntry{}
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Score, &e.Time, &e.Moves, &e.MatchID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset deletes every match, user, and leaderboard row.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin reset: %w", err)
	}
	for _, table := range []string{"leaderboard_entries", "users", "matches"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: reset %s: %w", table, err)
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*Match, error) {
	m := &Match{}
	err := row.Scan(&m.ID, &m.Player1, &m.Player2, &m.DiskCount, &m.StartTime, &m.EndTime,
		&m.Winner, &m.Player1Moves, &m.Player2Moves, &m.Player1Score, &m.Player2Score,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func collectMatches(rows *sql.Rows) ([]*Match, error) {
	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
