package session

import (
	"fmt"

	"github.com/dinesh-mca12/tohnew/game/store"
)

// ResolveSlot implements the join rules for a match. It mutates the
// durable record's slot bindings when it assigns a slot; the caller is
// responsible for persisting the record and mirroring the binding into
// the runtime session. The runtime session may be nil (REST pre-join
// before any socket has touched the match) and, when present, must be
// locked by the caller.
//
// Resolution order:
//  1. The name already occupies a slot: idempotent reconnect.
//  2. An unbound slot exists: bind it, player1 first.
//  3. Both slots bound to other names: a takeover is allowed only while
//     the match has zero cumulative progress (persisted and live) and is
//     not finished. The slot without a live connection is displaced;
//     when both are unconnected, player1 is displaced (documented
//     tiebreak).
func ResolveSlot(m *store.Match, sess *Session, playerName string) (Side, bool) {
	if m.Player1 == playerName {
		return Player1, true
	}
	if m.Player2 == playerName {
		return Player2, true
	}

	if m.Player1 == "" {
		m.Player1 = playerName
		return Player1, true
	}
	if m.Player2 == "" {
		m.Player2 = playerName
		return Player2, true
	}

	if !noProgress(m, sess) {
		return "", false
	}

	p1Connected, p2Connected := false, false
	if sess != nil {
		p1Connected, p2Connected = sess.Presence()
	}

	if !p1Connected {
		m.Player1 = playerName
		return Player1, true
	}
	if !p2Connected {
		m.Player2 = playerName
		return Player2, true
	}

	return "", false
}

// JoinBlockReason explains why ResolveSlot failed, in precedence order:
// already-completed, progress exists, both slots connected, generic full.
// Reasons name the current occupants for operator debuggability.
func JoinBlockReason(m *store.Match, sess *Session) string {
	occupants := fmt.Sprintf("%s, %s", m.Player1, m.Player2)

	if m.Finished() {
		return fmt.Sprintf("This match is already completed (players: %s).", occupants)
	}

	if progressMoves(m, sess) > 0 {
		return fmt.Sprintf("This match has already started and cannot accept a new player (current players: %s).", occupants)
	}

	if sess != nil {
		p1, p2 := sess.Presence()
		if p1 && p2 {
			return fmt.Sprintf("Both player slots are currently active (%s).", occupants)
		}
	}

	return fmt.Sprintf("Match is full (players: %s).", occupants)
}

// noProgress reports whether a match can still accept a slot takeover:
// not finished, and zero moves recorded anywhere.
func noProgress(m *store.Match, sess *Session) bool {
	return !m.Finished() && progressMoves(m, sess) == 0
}

func progressMoves(m *store.Match, sess *Session) int {
	total := m.ProgressMoves()
	if sess != nil {
		total += sess.RuntimeMoves()
	}
	return total
}
