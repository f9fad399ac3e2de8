// Package api provides the HTTP REST control surface for the tournament.
//
// The api package implements:
//   - Public match join and lookup endpoints
//   - Administrator routes behind HTTP basic auth
//   - Leaderboard export as JSON and CSV
//   - WebSocket upgrade handling
//   - Health check
//
// Endpoints:
//
// Public:
//   - POST /api/matches/join - bind a player slot on a match
//   - GET /api/matches/{id} - durable match record
//   - GET /ws - WebSocket upgrade
//   - GET /health - liveness check
//
// Administrative (basic auth, ADMIN_USERNAME/ADMIN_PASSWORD):
//   - POST /api/admin/auth/login - credential check, echoes the admin user
//   - POST /api/admin/matches - create a match
//   - GET /api/admin/matches/live - durable+runtime merge, newest first
//   - POST /api/admin/matches/start-all - start every pending match
//   - GET /api/admin/leaderboard - ranked winner rows
//   - GET /api/admin/leaderboard.csv - same, as a CSV attachment
//   - POST /api/admin/reset - wipe durable rows and runtime sessions
//
// Request/Response Format:
//
// All endpoints accept and return JSON except the CSV export. Errors are
// returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "message": "error message"
//	}
//
// Service errors map onto statuses: unknown match is 404, validation and
// slot conflicts are 400, everything else is 500.
//
// Usage:
//
//	server := api.NewServer(matchService, hub, logger)
//	http.ListenAndServe(addr, server)
package api
