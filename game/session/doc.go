// Package session provides the live, in-memory runtime state of matches.
//
// The session package implements:
//   - One Session per active match, owned by a Registry
//   - Slot resolution and takeover rules for joining players
//   - Presence tracking per slot
//   - Idle-session reaping
//
// Core Types:
//
// Session is the runtime state of one match: slot name bindings, live
// connection handles, per-slot stats, and the start/end lifecycle flags.
// Registry is the process-wide map from match ID to Session, injected into
// the service and transport layers at construction time; there is no
// ambient global.
//
// Concurrency:
//
// Session embeds a mutex that serializes all read-modify-write sequences
// for the match. Callers lock the session for the whole operation,
// including any broadcasts that must be ordered with it; every Session
// method assumes the caller holds the lock. The Registry map has its own
// RWMutex, so work on different matches never contends.
//
// Slot Resolution:
//
// ResolveSlot implements the join rules: idempotent reconnect for a name
// that already holds a slot, first free slot otherwise, and a takeover of
// an unconnected slot only while the match has zero cumulative progress
// and is not finished. JoinBlockReason explains a failed resolution in
// precedence order, naming the current occupants.
//
// Lifecycle:
//
// Sessions are created on first reference and live until an
// administrative reset or the idle reaper removes them. The reaper only
// touches sessions that are ended or never started, with no live
// connections; a started, unfinished session is never reaped because its
// live move counts back the takeover guard.
package session
