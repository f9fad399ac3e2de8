package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Match is the durable record of one two-player contest. Player slots are
// empty strings until bound. While a match is live the runtime session is
// the source of truth; once an end time is written the record is.
type Match struct {
	ID           string     `json:"matchId"`
	Player1      string     `json:"player1"`
	Player2      string     `json:"player2"`
	DiskCount    int        `json:"diskCount"`
	StartTime    *time.Time `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Winner       string     `json:"winner"`
	Player1Moves int        `json:"player1Moves"`
	Player2Moves int        `json:"player2Moves"`
	Player1Score float64    `json:"player1Score"`
	Player2Score float64    `json:"player2Score"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ProgressMoves returns the sum of both players' persisted move counts.
func (m *Match) ProgressMoves() int {
	return m.Player1Moves + m.Player2Moves
}

// Finished reports whether the durable record shows a completed match.
func (m *Match) Finished() bool {
	return m.Winner != "" || m.EndTime != nil
}

// LeaderboardEntry is one append-only row per match winner, never mutated
// after creation.
type LeaderboardEntry struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      float64   `json:"score"`
	Time       float64   `json:"time"`
	Moves      int       `json:"moves"`
	MatchID    string    `json:"matchId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// User records which match a player name has joined.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	MatchID string `json:"matchId"`
}

// Store defines the durable operations the match runtime depends on.
type Store interface {
	CreateMatch(ctx context.Context, m *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	UpdateMatch(ctx context.Context, m *Match) error

	// ListMatches returns matches newest-first, up to limit.
	ListMatches(ctx context.Context, limit int) ([]*Match, error)

	// ListPendingMatches returns matches without an end time.
	ListPendingMatches(ctx context.Context) ([]*Match, error)

	// UpsertUser records a player name's membership in a match.
	UpsertUser(ctx context.Context, name, matchID string) error

	// AppendLeaderboardEntry adds one winner row. Entries are append-only.
	AppendLeaderboardEntry(ctx context.Context, e *LeaderboardEntry) error

	// ListLeaderboard returns entries ranked by score descending then
	// time ascending, up to limit.
	ListLeaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error)

	// Reset deletes all match, user, and leaderboard rows.
	Reset(ctx context.Context) error

	Close() error
}
