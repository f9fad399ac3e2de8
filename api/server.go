package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/dinesh-mca12/tohnew/game/service"
	"github.com/dinesh-mca12/tohnew/game/store"
	"github.com/dinesh-mca12/tohnew/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.MatchService
	hub     *websocket.Hub
	router  *mux.Router
	logger  *log.Logger
}

// NewServer creates a new API server
func NewServer(matchService service.MatchService, hub *websocket.Hub, logger *log.Logger) *Server {
	s := &Server{
		service: matchService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()

	// Public match routes
	api.HandleFunc("/matches/join", s.handleJoinMatch).Methods("POST")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")

	// Administrative routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.requireAdminAuth)
	admin.HandleFunc("/auth/login", s.handleAdminLogin).Methods("POST")
	admin.HandleFunc("/matches", s.handleCreateMatch).Methods("POST")
	admin.HandleFunc("/matches/live", s.handleLiveMatches).Methods("GET")
	admin.HandleFunc("/matches/start-all", s.handleStartAll).Methods("POST")
	admin.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")
	admin.HandleFunc("/leaderboard.csv", s.handleLeaderboardCSV).Methods("GET")
	admin.HandleFunc("/reset", s.handleReset).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError maps service errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	var conflict *service.SlotConflictError

	switch {
	case errors.Is(err, service.ErrMatchNotFound):
		respondError(w, http.StatusNotFound, "Match not found.")
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &conflict):
		respondError(w, http.StatusBadRequest, conflict.Reason)
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Match handlers

func (s *Server) handleJoinMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MatchID    string `json:"matchId"`
		PlayerName string `json:"playerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid join payload.")
		return
	}

	m, err := s.service.JoinMatch(r.Context(), req.MatchID, req.PlayerName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matchId":   m.ID,
		"diskCount": m.DiskCount,
		"player1":   m.Player1,
		"player2":   m.Player2,
	})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	m, err := s.service.GetMatch(r.Context(), matchID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// Admin handlers

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"adminUser": adminUser(r.Context()),
	})
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player1   string `json:"player1"`
		Player2   string `json:"player2"`
		DiskCount int    `json:"diskCount"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	m, err := s.service.CreateMatch(r.Context(), req.Player1, req.Player2, req.DiskCount)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, m)
}

func (s *Server) handleLiveMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.service.LiveMatches(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

func (s *Server) handleStartAll(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.ForceStartAll(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"started": count})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Leaderboard(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []*store.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleLeaderboardCSV(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Leaderboard(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.csv"`)
	if err := writeLeaderboardCSV(w, entries); err != nil {
		s.logger.Error("leaderboard export failed", "err", err)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Tournament reset complete."})
}

// handleWebSocket upgrades the connection and hands it to the hub.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, s.service)
}
