// Package store provides durable persistence for matches, players, and
// leaderboard entries.
//
// The store package implements:
//   - The Store interface the match runtime depends on
//   - A SQLite implementation with inline schema migration
//   - Ranked leaderboard queries (score descending, time ascending)
//   - A transactional full reset
//
// Core Types:
//
// Match is the durable record of one two-player contest; player slots are
// empty strings until bound. LeaderboardEntry is one append-only row per
// match winner, never mutated after creation. User records which match a
// player name has joined.
//
// Consistency Model:
//
// While a match is live the runtime session is the source of truth; once
// an end time is written the durable record is. The runtime treats this
// store as eventually-consistent follow-through: milestone writes that
// fail are logged by callers and the in-memory session keeps serving.
//
// Usage:
//
//	st, err := store.Open("data/hanoi.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer st.Close()
//
//	m := &store.Match{ID: id, DiskCount: 4}
//	if err := st.CreateMatch(ctx, m); err != nil {
//		log.Fatal(err)
//	}
//
// The SQLite implementation uses the pure-Go modernc.org/sqlite driver,
// so the server builds without cgo.
package store
