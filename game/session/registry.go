package session

import (
	"sync"
	"time"
)

// Registry is the process-wide map from match ID to live session. It is an
// owned object injected into the service and transport layers at
// construction time; there is no ambient global. Sessions are created on
// first reference and live until an administrative reset or the idle
// reaper removes them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for a match, creating it from the given
// durable bindings on first reference. The call is idempotent: on a hit
// the existing session is returned unmodified and the arguments are
// ignored, since the durable record is authoritative only at creation.
func (r *Registry) GetOrCreate(matchID string, diskCount int, player1, player2 string) *Session {
	r.mu.RLock()
	sess, ok := r.sessions[matchID]
	r.mu.RUnlock()
	if ok {
		return sess
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock; another goroutine may have won.
	if sess, ok := r.sessions[matchID]; ok {
		return sess
	}

	sess = New(matchID, diskCount, player1, player2)
	r.sessions[matchID] = sess
	return sess
}

// Get returns the live session for a match, if one exists.
func (r *Registry) Get(matchID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[matchID]
	return sess, ok
}

// List returns all live sessions.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		result = append(result, sess)
	}
	return result
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Clear wipes all sessions. Used only by the administrative reset.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*Session)
}

// ReapIdle removes sessions that have seen no event for maxAge, hold no
// live connection, and are either ended or never started. It returns the
// number removed. A started, unfinished session is never reaped: its live
// move counts are the only record of progress until the result commits,
// and losing them would reopen the slot-takeover window for a player who
// has already made moves. Sessions with a connected player are never
// reaped either.
func (r *Registry) ReapIdle(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		sess.Lock()
		p1, p2 := sess.Presence()
		inFlight := sess.Started && !sess.Ended
		stale := sess.LastEventAt.Before(cutoff) && !p1 && !p2 && !inFlight
		sess.Unlock()

		if stale {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
