// Package websocket provides the realtime transport for matches.
//
// The websocket package implements:
//   - One private room per match for the two participants
//   - An administrator room subscribed to all sessions
//   - Event dispatch from clients into the service layer
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// connections. Each client connection runs a read pump and a write pump;
// the read pump applies events for one connection in arrival order. The
// hub only moves messages; all match state changes go through the service
// layer. Hub implements service.Broadcaster.
//
// Message Protocol:
//
// Messages are JSON envelopes in both directions:
//   - Incoming: {event: "match:join", data: {matchId, playerName}}
//   - Outgoing: {event: "match:stats", data: {matchId, stats}}
//
// Inbound events are match:join, match:start, match:progress, and
// admin:auth. Outbound events are match:state, match:started,
// match:stats, match:winner, match:presence, match:error, and the admin
// feed admin:matches.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, matchService)
//	})
//
// Connection Lifecycle:
//
// 1. Client connects and sends match:join (or admin:auth)
// 2. The service resolves a slot and the hub places the client in a room
// 3. State and presence are sent to the client
// 4. Progress reports flow in, broadcasts flow out
// 5. Disconnection clears presence but never terminates the session
//
// Concurrency:
//
// Broadcasts are non-blocking channel pushes, so the service may call
// ToMatch while holding a session lock without risking a stall. A client
// that cannot keep up is dropped; its read pump cleans up presence.
package websocket
