package service

import (
	"context"

	"github.com/dinesh-mca12/tohnew/game/session"
	"github.com/dinesh-mca12/tohnew/game/store"
)

// Realtime channel event names.
const (
	EventState        = "match:state"
	EventError        = "match:error"
	EventStarted      = "match:started"
	EventStats        = "match:stats"
	EventWinner       = "match:winner"
	EventPresence     = "match:presence"
	EventAdminMatches = "admin:matches"
)

// Broadcaster fans session events out to the match's private channel and
// the administrator channel. Implementations must not block: within one
// match, events are delivered in call order.
type Broadcaster interface {
	ToMatch(matchID, event string, payload any)
	ToAdmins(event string, payload any)
}

// MatchService defines all match-related operations.
type MatchService interface {
	// Match lifecycle
	CreateMatch(ctx context.Context, player1, player2 string, diskCount int) (*store.Match, error)
	GetMatch(ctx context.Context, matchID string) (*store.Match, error)

	// JoinMatch is the REST pre-join: it binds a slot on the durable
	// record and registers the player, without opening a live connection.
	JoinMatch(ctx context.Context, matchID, playerName string) (*store.Match, error)

	// Connect resolves a slot for a live connection and binds it.
	Connect(ctx context.Context, matchID, playerName, connID string) (*JoinResult, error)

	// Disconnect releases a slot's live connection. Name bindings and
	// recorded stats are untouched.
	Disconnect(ctx context.Context, matchID string, side session.Side, connID string)

	// Start synchronization
	ForceStart(ctx context.Context, matchID string) (*session.Snapshot, error)
	ForceStartAll(ctx context.Context) (int, error)

	// RecordProgress applies one progress report. Rejected reports are
	// silently dropped; the next periodic report supersedes them.
	RecordProgress(ctx context.Context, matchID string, side session.Side, moves int, elapsedSeconds float64, completed bool)

	// Admin surface
	LiveMatches(ctx context.Context) ([]*LiveMatch, error)
	Leaderboard(ctx context.Context) ([]*store.LeaderboardEntry, error)
	Reset(ctx context.Context) error
	AdminSnapshots() []session.Snapshot
	AdminAuthorized(username, password string) bool
}

// JoinResult is returned to a successfully connected player.
type JoinResult struct {
	Snapshot   session.Snapshot
	Side       session.Side
	PlayerName string
	Presence   PresencePayload
}

// LiveMatch merges a durable match record with whatever runtime session
// exists for it. Stats is nil when the match has no runtime entry.
type LiveMatch struct {
	*store.Match
	Started bool                                 `json:"started"`
	Ended   bool                                 `json:"ended"`
	Stats   map[session.Side]session.PlayerStats `json:"stats,omitempty"`
}

// StatePayload is the snapshot sent to a player who just joined.
type StatePayload struct {
	session.Snapshot
	Side       session.Side `json:"side"`
	PlayerName string       `json:"playerName"`
}

// PresencePayload reports both slots' live-connection state.
type PresencePayload struct {
	Player1Connected bool `json:"player1Connected"`
	Player2Connected bool `json:"player2Connected"`
}

// StartedPayload carries the scheduled start instant. Clients count down
// locally; the server does not re-announce "go".
type StartedPayload struct {
	MatchID   string `json:"matchId"`
	StartAt   int64  `json:"startAt"`
	DiskCount int    `json:"diskCount"`
}

// StatsPayload carries the per-slot stats map after a progress update.
type StatsPayload struct {
	MatchID string                               `json:"matchId"`
	Stats   map[session.Side]session.PlayerStats `json:"stats"`
}

// WinnerPayload is the terminal event, sent at most once per match.
type WinnerPayload struct {
	MatchID string                               `json:"matchId"`
	Winner  string                               `json:"winner"`
	Stats   map[session.Side]session.PlayerStats `json:"stats"`
}
