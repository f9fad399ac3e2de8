package session

import (
	"sync"
	"time"
)

// Side identifies one of the two player slots in a match. The wire names
// match the persisted record fields.
type Side string

const (
	Player1 Side = "player1"
	Player2 Side = "player2"
)

// PlayerStats is one slot's reported progress. The record is overwritten
// whole on every report (last-write-wins per slot, no merging).
type PlayerStats struct {
	Moves          int     `json:"moves"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	IsCompleted    bool    `json:"isCompleted"`
	Score          float64 `json:"score"`
	Accuracy       float64 `json:"accuracy"`
}

// Snapshot is a read-only copy of a session used for broadcasts and the
// admin live view.
type Snapshot struct {
	MatchID   string               `json:"matchId"`
	DiskCount int                  `json:"diskCount"`
	Started   bool                 `json:"started"`
	StartAt   int64                `json:"startAt"`
	Ended     bool                 `json:"ended"`
	Winner    string               `json:"winner"`
	Stats     map[Side]PlayerStats `json:"stats"`
	Players   map[Side]string      `json:"players"`
}

// Session is the runtime state of one match. The embedded mutex serializes
// all read-modify-write sequences for the match: callers lock the session
// for the whole operation, including any broadcasts that must be ordered
// with it. Every method below assumes the caller holds the lock.
type Session struct {
	sync.Mutex

	MatchID   string
	DiskCount int
	Started   bool
	StartAt   int64 // scheduled start, epoch milliseconds; 0 until set
	Ended     bool
	Winner    string

	// LastEventAt is bumped on every mutating operation and drives the
	// idle-session reaper.
	LastEventAt time.Time

	names map[Side]string
	conns map[Side]string
	stats map[Side]PlayerStats
}

// New creates a fresh session mirroring the durable record's bindings.
func New(matchID string, diskCount int, player1, player2 string) *Session {
	return &Session{
		MatchID:     matchID,
		DiskCount:   diskCount,
		LastEventAt: time.Now(),
		names: map[Side]string{
			Player1: player1,
			Player2: player2,
		},
		conns: map[Side]string{},
		stats: map[Side]PlayerStats{
			Player1: {Accuracy: 100},
			Player2: {Accuracy: 100},
		},
	}
}

// Name returns the player name bound to a slot, empty when unbound.
func (s *Session) Name(side Side) string {
	return s.names[side]
}

// SetName binds a player name to a slot.
func (s *Session) SetName(side Side, name string) {
	s.names[side] = name
	s.touch()
}

// SideOf returns the slot a player name occupies, if any.
func (s *Session) SideOf(name string) (Side, bool) {
	if name == "" {
		return "", false
	}
	for _, side := range []Side{Player1, Player2} {
		if s.names[side] == name {
			return side, true
		}
	}
	return "", false
}

// Connected reports whether a slot has a live connection.
func (s *Session) Connected(side Side) bool {
	return s.conns[side] != ""
}

// SetConn binds a connection ID to a slot. A slot holds at most one
// connection; a newer connection for the same slot displaces the old ID.
func (s *Session) SetConn(side Side, connID string) {
	s.conns[side] = connID
	s.touch()
}

// ClearConn removes a slot's connection only if it still holds the given
// ID, so a stale disconnect cannot clobber a fresh reconnect. It reports
// whether anything changed.
func (s *Session) ClearConn(side Side, connID string) bool {
	if s.conns[side] != connID || connID == "" {
		return false
	}
	s.conns[side] = ""
	s.touch()
	return true
}

// Presence returns the live-connection state of both slots.
func (s *Session) Presence() (player1 bool, player2 bool) {
	return s.conns[Player1] != "", s.conns[Player2] != ""
}

// Stats returns the recorded stats for a slot.
func (s *Session) Stats(side Side) PlayerStats {
	return s.stats[side]
}

// SetStats overwrites a slot's stats record.
func (s *Session) SetStats(side Side, st PlayerStats) {
	s.stats[side] = st
	s.touch()
}

// RuntimeMoves returns the sum of both slots' live move counts.
func (s *Session) RuntimeMoves() int {
	return s.stats[Player1].Moves + s.stats[Player2].Moves
}

// Start schedules the synchronized countdown. It is idempotent: once the
// session is started, later calls leave StartAt untouched and report false.
func (s *Session) Start(startAt int64) bool {
	if s.Started {
		return false
	}
	s.Started = true
	s.StartAt = startAt
	s.touch()
	return true
}

// Finish records the winner and marks the session terminal. Only the first
// call wins; later calls report false and change nothing.
func (s *Session) Finish(winner string) bool {
	if s.Ended || s.Winner != "" {
		return false
	}
	s.Ended = true
	s.Winner = winner
	s.touch()
	return true
}

// Snapshot copies the session into an immutable view.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		MatchID:   s.MatchID,
		DiskCount: s.DiskCount,
		Started:   s.Started,
		StartAt:   s.StartAt,
		Ended:     s.Ended,
		Winner:    s.Winner,
		Stats: map[Side]PlayerStats{
			Player1: s.stats[Player1],
			Player2: s.stats[Player2],
		},
		Players: map[Side]string{
			Player1: s.names[Player1],
			Player2: s.names[Player2],
		},
	}
}

func (s *Session) touch() {
	s.LastEventAt = time.Now()
}
