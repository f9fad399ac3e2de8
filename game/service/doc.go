// Package service provides the business logic layer for the match runtime.
//
// The service package implements:
//   - Match lifecycle (create, join, connect, disconnect)
//   - Synchronized countdown start (single match and start-all)
//   - Progress intake with win detection and first-completion-wins
//   - Result commit and leaderboard append
//   - The admin live view (push snapshots and pull merge)
//
// Core Interfaces:
//
// MatchService is the main service interface providing high-level match
// operations. Broadcaster fans session events out to the match's private
// channel and the administrator channel; the transport layer implements
// it, keeping the service free of any transport import.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket) and
// the session runtime. It is the only component allowed to mutate session
// state: it holds the session lock across each read-modify-write and the
// broadcasts that must be ordered with it, so within one match the stats
// event always precedes the winner event.
//
// Failure Policy:
//
// Milestone persistence writes (slot save, start time, result commit,
// leaderboard append) are logged at Warn and swallowed; the in-memory
// session has already advanced and continues to serve live state. The
// REST pre-join propagates persistence errors because nothing is in
// flight yet.
//
// Usage:
//
//	registry := session.NewRegistry()
//	hub := websocket.NewHub(logger)
//	svc := service.NewMatchService(st, registry, hub, logger)
//
//	result, err := svc.Connect(ctx, matchID, playerName, connID)
package service
