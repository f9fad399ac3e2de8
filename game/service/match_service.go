package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dinesh-mca12/tohnew/game/hanoi"
	"github.com/dinesh-mca12/tohnew/game/session"
	"github.com/dinesh-mca12/tohnew/game/store"
)

// startDelay is the synchronized countdown between forceStart and the
// instant both clients transition their boards to active.
const startDelay = 3 * time.Second

// liveMatchLimit caps the admin pull query.
const liveMatchLimit = 200

// leaderboardLimit caps leaderboard reads.
const leaderboardLimit = 500

type matchService struct {
	store       store.Store
	registry    *session.Registry
	broadcaster Broadcaster
	logger      *log.Logger
}

// NewMatchService creates the match service. The registry and broadcaster
// are owned by the caller and injected here; the service is the only
// writer of session state.
func NewMatchService(st store.Store, registry *session.Registry, broadcaster Broadcaster, logger *log.Logger) MatchService {
	return &matchService{
		store:       st,
		registry:    registry,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// CreateMatch creates a durable match record. Player names may be empty;
// a zero disk count defaults to 4.
func (s *matchService) CreateMatch(ctx context.Context, player1, player2 string, diskCount int) (*store.Match, error) {
	if diskCount == 0 {
		diskCount = 4
	}
	if diskCount < hanoi.MinDiskCount || diskCount > hanoi.MaxDiskCount {
		return nil, &ValidationError{Message: fmt.Sprintf("disk count must be between %d and %d", hanoi.MinDiskCount, hanoi.MaxDiskCount)}
	}

	m := &store.Match{
		ID:        uuid.NewString(),
		Player1:   strings.TrimSpace(player1),
		Player2:   strings.TrimSpace(player2),
		DiskCount: diskCount,
	}
	if err := s.store.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	s.logger.Info("match created", "matchId", m.ID, "diskCount", m.DiskCount)
	return m, nil
}

// GetMatch returns the durable match record.
func (s *matchService) GetMatch(ctx context.Context, matchID string) (*store.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return m, nil
}

// JoinMatch is the REST pre-join: it binds a slot on the durable record
// and upserts the player's registration, without touching presence.
func (s *matchService) JoinMatch(ctx context.Context, matchID, playerName string) (*store.Match, error) {
	playerName = strings.TrimSpace(playerName)
	if matchID == "" || playerName == "" {
		return nil, &ValidationError{Message: "matchId and playerName are required"}
	}

	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sess, hasRuntime := s.registry.Get(matchID)
	if hasRuntime {
		sess.Lock()
	}

	_, ok := session.ResolveSlot(m, sess, playerName)
	if !ok {
		reason := session.JoinBlockReason(m, sess)
		if hasRuntime {
			sess.Unlock()
		}
		return nil, &SlotConflictError{Reason: reason}
	}

	if hasRuntime {
		sess.SetName(session.Player1, m.Player1)
		sess.SetName(session.Player2, m.Player2)
		sess.Unlock()
	}

	if err := s.store.UpdateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("persist join: %w", err)
	}
	if err := s.store.UpsertUser(ctx, playerName, m.ID); err != nil {
		s.logger.Warn("user upsert failed", "matchId", m.ID, "player", playerName, "err", err)
	}

	return m, nil
}

// Connect resolves a slot for a live connection, binds the connection,
// and broadcasts presence. The returned snapshot is what the transport
// sends back to the joining client as the state event.
func (s *matchService) Connect(ctx context.Context, matchID, playerName, connID string) (*JoinResult, error) {
	playerName = strings.TrimSpace(playerName)
	if matchID == "" || playerName == "" {
		return nil, &ValidationError{Message: "matchId and playerName are required"}
	}

	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sess := s.registry.GetOrCreate(m.ID, m.DiskCount, m.Player1, m.Player2)

	result, err := func() (*JoinResult, error) {
		sess.Lock()
		defer sess.Unlock()

		side, ok := session.ResolveSlot(m, sess, playerName)
		if !ok {
			return nil, &SlotConflictError{Reason: session.JoinBlockReason(m, sess)}
		}

		// In-memory state advances first; the durable write is
		// follow-through and must not roll it back.
		sess.SetName(session.Player1, m.Player1)
		sess.SetName(session.Player2, m.Player2)
		sess.SetConn(side, connID)

		if err := s.store.UpdateMatch(ctx, m); err != nil {
			s.logger.Warn("slot save failed, session continues", "matchId", m.ID, "err", err)
		}
		if err := s.store.UpsertUser(ctx, playerName, m.ID); err != nil {
			s.logger.Warn("user upsert failed", "matchId", m.ID, "player", playerName, "err", err)
		}

		p1, p2 := sess.Presence()
		presence := PresencePayload{Player1Connected: p1, Player2Connected: p2}
		s.broadcaster.ToMatch(m.ID, EventPresence, presence)

		return &JoinResult{
			Snapshot:   sess.Snapshot(),
			Side:       side,
			PlayerName: playerName,
			Presence:   presence,
		}, nil
	}()
	if err != nil {
		return nil, err
	}

	s.refreshAdmins()
	s.logger.Info("player connected", "matchId", m.ID, "player", playerName, "side", result.Side)
	return result, nil
}

// Disconnect clears a slot's live connection if it still holds the given
// connection ID, then rebroadcasts presence. Never terminates the session.
func (s *matchService) Disconnect(ctx context.Context, matchID string, side session.Side, connID string) {
	sess, ok := s.registry.Get(matchID)
	if !ok {
		return
	}

	cleared := func() bool {
		sess.Lock()
		defer sess.Unlock()

		if !sess.ClearConn(side, connID) {
			return false
		}
		p1, p2 := sess.Presence()
		s.broadcaster.ToMatch(matchID, EventPresence, PresencePayload{Player1Connected: p1, Player2Connected: p2})
		return true
	}()

	if cleared {
		s.refreshAdmins()
		s.logger.Info("player disconnected", "matchId", matchID, "side", side)
	}
}

// ForceStart schedules the synchronized countdown. Idempotent: once the
// session is started, the existing snapshot is returned unchanged and
// nothing is persisted or broadcast.
func (s *matchService) ForceStart(ctx context.Context, matchID string) (*session.Snapshot, error) {
	m, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sess := s.registry.GetOrCreate(m.ID, m.DiskCount, m.Player1, m.Player2)

	snap, started := func() (session.Snapshot, bool) {
		sess.Lock()
		defer sess.Unlock()

		startAt := time.Now().Add(startDelay).UnixMilli()
		if !sess.Start(startAt) {
			return sess.Snapshot(), false
		}

		st := time.UnixMilli(sess.StartAt)
		m.StartTime = &st
		if err := s.store.UpdateMatch(ctx, m); err != nil {
			s.logger.Warn("start time save failed, session continues", "matchId", m.ID, "err", err)
		}

		s.broadcaster.ToMatch(m.ID, EventStarted, StartedPayload{
			MatchID:   m.ID,
			StartAt:   sess.StartAt,
			DiskCount: sess.DiskCount,
		})
		return sess.Snapshot(), true
	}()

	if started {
		s.refreshAdmins()
		s.logger.Info("match started", "matchId", m.ID, "startAt", snap.StartAt)
	}
	return &snap, nil
}

// ForceStartAll starts every durable match without an end time and
// returns the count attempted.
func (s *matchService) ForceStartAll(ctx context.Context) (int, error) {
	pending, err := s.store.ListPendingMatches(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pending matches: %w", err)
	}

	for _, m := range pending {
		if _, err := s.ForceStart(ctx, m.ID); err != nil {
			s.logger.Warn("force start failed", "matchId", m.ID, "err", err)
		}
	}
	return len(pending), nil
}

// RecordProgress applies one progress report: recompute the slot's score
// and accuracy, overwrite its stats, broadcast, and on first completion
// commit the result. Rejected reports are dropped without an error; the
// client's next periodic report supersedes them.
func (s *matchService) RecordProgress(ctx context.Context, matchID string, side session.Side, moves int, elapsedSeconds float64, completed bool) {
	if moves < 0 || elapsedSeconds < 0 {
		return
	}
	if side != session.Player1 && side != session.Player2 {
		return
	}

	sess, ok := s.registry.Get(matchID)
	if !ok {
		return
	}

	applied := func() bool {
		sess.Lock()
		defer sess.Unlock()

		if sess.Ended || sess.Name(side) == "" {
			return false
		}

		stats := session.PlayerStats{
			Moves:          moves,
			ElapsedSeconds: elapsedSeconds,
			IsCompleted:    completed,
			Accuracy:       hanoi.Accuracy(sess.DiskCount, moves),
			Score:          hanoi.Score(sess.DiskCount, moves, elapsedSeconds),
		}
		sess.SetStats(side, stats)

		snap := sess.Snapshot()
		s.broadcaster.ToMatch(matchID, EventStats, StatsPayload{MatchID: matchID, Stats: snap.Stats})

		if completed && sess.Finish(sess.Name(side)) {
			s.commitResult(ctx, sess, side)
			s.broadcaster.ToMatch(matchID, EventWinner, WinnerPayload{
				MatchID: matchID,
				Winner:  sess.Winner,
				Stats:   sess.Snapshot().Stats,
			})
			s.logger.Info("match won", "matchId", matchID, "winner", sess.Winner)
		}
		return true
	}()

	if applied {
		s.refreshAdmins()
	}
}

// commitResult writes the final durable record and appends the winner's
// leaderboard entry. The session has already ended in memory; persistence
// failures are logged and swallowed so the live match never stalls on the
// store. Caller holds the session lock.
func (s *matchService) commitResult(ctx context.Context, sess *session.Session, winnerSide session.Side) {
	m, err := s.store.GetMatch(ctx, sess.MatchID)
	if err != nil {
		s.logger.Warn("result commit failed: match read", "matchId", sess.MatchID, "err", err)
		return
	}

	now := time.Now().UTC()
	m.EndTime = &now
	m.Winner = sess.Winner
	m.Player1Moves = sess.Stats(session.Player1).Moves
	m.Player2Moves = sess.Stats(session.Player2).Moves
	m.Player1Score = sess.Stats(session.Player1).Score
	m.Player2Score = sess.Stats(session.Player2).Score

	if err := s.store.UpdateMatch(ctx, m); err != nil {
		s.logger.Warn("result commit failed: match write", "matchId", sess.MatchID, "err", err)
	}

	winnerStats := sess.Stats(winnerSide)
	entry := &store.LeaderboardEntry{
		PlayerName: sess.Winner,
		Score:      winnerStats.Score,
		Time:       winnerStats.ElapsedSeconds,
		Moves:      winnerStats.Moves,
		MatchID:    sess.MatchID,
	}
	if err := s.store.AppendLeaderboardEntry(ctx, entry); err != nil {
		s.logger.Warn("result commit failed: leaderboard append", "matchId", sess.MatchID, "err", err)
	}
}

// LiveMatches merges durable records with runtime sessions for the admin
// pull query. A match with no runtime entry falls back to durable-only
// fields and a nil stats map.
func (s *matchService) LiveMatches(ctx context.Context) ([]*LiveMatch, error) {
	matches, err := s.store.ListMatches(ctx, liveMatchLimit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	result := make([]*LiveMatch, 0, len(matches))
	for _, m := range matches {
		lm := &LiveMatch{
			Match:   m,
			Started: m.StartTime != nil,
			Ended:   m.EndTime != nil,
		}
		if sess, ok := s.registry.Get(m.ID); ok {
			sess.Lock()
			snap := sess.Snapshot()
			sess.Unlock()
			lm.Started = snap.Started
			lm.Ended = snap.Ended
			lm.Stats = snap.Stats
		}
		result = append(result, lm)
	}
	return result, nil
}

// Leaderboard returns the ranked winner rows.
func (s *matchService) Leaderboard(ctx context.Context) ([]*store.LeaderboardEntry, error) {
	entries, err := s.store.ListLeaderboard(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return entries, nil
}

// Reset deletes all durable rows and wipes the runtime registry. The two
// stores fail independently; if the durable delete fails the registry is
// left untouched so an operator can retry.
func (s *matchService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset store: %w", err)
	}
	s.registry.Clear()
	s.refreshAdmins()
	s.logger.Info("tournament reset complete")
	return nil
}

// AdminSnapshots renders every runtime session for the admin push feed.
// Matches without a runtime entry do not appear here; the pull query
// covers those.
func (s *matchService) AdminSnapshots() []session.Snapshot {
	sessions := s.registry.List()
	snaps := make([]session.Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		snaps = append(snaps, sess.Snapshot())
		sess.Unlock()
	}
	return snaps
}

// AdminAuthorized checks administrative credentials against the
// environment, defaulting to admin/admin123.
func (s *matchService) AdminAuthorized(username, password string) bool {
	wantUser := envOr("ADMIN_USERNAME", "admin")
	wantPass := envOr("ADMIN_PASSWORD", "admin123")
	return username != "" && password != "" && username == wantUser && password == wantPass
}

// refreshAdmins pushes the full runtime view to the admin channel. Called
// after every mutating event, outside any session lock.
func (s *matchService) refreshAdmins() {
	s.broadcaster.ToAdmins(EventAdminMatches, s.AdminSnapshots())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
