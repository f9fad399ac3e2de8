package session

import (
	"strings"
	"testing"
	"time"

	"github.com/dinesh-mca12/tohnew/game/store"
)

func TestResolveSlot(t *testing.T) {
	t.Run("reconnect is idempotent", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", DiskCount: 4}
		for i := 0; i < 2; i++ {
			side, ok := ResolveSlot(m, nil, "alice")
			if !ok || side != Player1 {
				t.Fatalf("Attempt %d: expected player1, got %q ok=%v", i+1, side, ok)
			}
		}
		if m.Player1 != "alice" || m.Player2 != "bob" {
			t.Errorf("Bindings changed on reconnect: %+v", m)
		}
	})

	t.Run("binds first free slot", func(t *testing.T) {
		m := &store.Match{ID: "m1", DiskCount: 4}
		side, ok := ResolveSlot(m, nil, "alice")
		if !ok || side != Player1 {
			t.Fatalf("Expected player1, got %q ok=%v", side, ok)
		}
		side, ok = ResolveSlot(m, nil, "bob")
		if !ok || side != Player2 {
			t.Fatalf("Expected player2, got %q ok=%v", side, ok)
		}
		if m.Player1 != "alice" || m.Player2 != "bob" {
			t.Errorf("Unexpected bindings: %+v", m)
		}
	})

	t.Run("takeover of unconnected slot with zero progress", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", DiskCount: 4}
		sess := New("m1", 4, "alice", "bob")
		sess.SetConn(Player1, "conn-a")

		side, ok := ResolveSlot(m, sess, "carol")
		if !ok || side != Player2 {
			t.Fatalf("Expected takeover of player2, got %q ok=%v", side, ok)
		}
		if m.Player2 != "carol" {
			t.Errorf("Expected carol bound to player2, got %q", m.Player2)
		}
		if m.Player1 != "alice" {
			t.Errorf("Connected slot should be untouched, got %q", m.Player1)
		}
	})

	t.Run("both unconnected prefers player1", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", DiskCount: 4}
		sess := New("m1", 4, "alice", "bob")

		side, ok := ResolveSlot(m, sess, "carol")
		if !ok || side != Player1 {
			t.Fatalf("Expected player1 tiebreak, got %q ok=%v", side, ok)
		}
		if m.Player1 != "carol" {
			t.Errorf("Expected carol bound to player1, got %q", m.Player1)
		}
	})

	t.Run("no takeover once live progress exists", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", DiskCount: 4}
		sess := New("m1", 4, "alice", "bob")
		sess.SetStats(Player1, PlayerStats{Moves: 3})

		if _, ok := ResolveSlot(m, sess, "carol"); ok {
			t.Error("Takeover should be rejected when live moves exist")
		}
	})

	t.Run("no takeover once persisted progress exists", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", Player2Moves: 5, DiskCount: 4}

		if _, ok := ResolveSlot(m, nil, "carol"); ok {
			t.Error("Takeover should be rejected when persisted moves exist")
		}
	})

	t.Run("no takeover of finished match", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", Winner: "alice", DiskCount: 4}

		if _, ok := ResolveSlot(m, nil, "carol"); ok {
			t.Error("Takeover should be rejected for a finished match")
		}
	})

	t.Run("no takeover when both slots connected", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", DiskCount: 4}
		sess := New("m1", 4, "alice", "bob")
		sess.SetConn(Player1, "conn-a")
		sess.SetConn(Player2, "conn-b")

		if _, ok := ResolveSlot(m, sess, "carol"); ok {
			t.Error("Takeover should be rejected when both slots are connected")
		}
	})
}

func TestJoinBlockReason(t *testing.T) {
	t.Run("completed wins precedence", func(t *testing.T) {
		now := time.Now()
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", Winner: "alice", EndTime: &now, Player1Moves: 15}
		reason := JoinBlockReason(m, nil)
		if !strings.Contains(reason, "already completed") {
			t.Errorf("Expected completed reason, got %q", reason)
		}
	})

	t.Run("progress beats connectivity", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob", Player1Moves: 2}
		sess := New("m1", 4, "alice", "bob")
		sess.SetConn(Player1, "conn-a")
		sess.SetConn(Player2, "conn-b")

		reason := JoinBlockReason(m, sess)
		if !strings.Contains(reason, "already started") {
			t.Errorf("Expected progress reason, got %q", reason)
		}
	})

	t.Run("both connected", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob"}
		sess := New("m1", 4, "alice", "bob")
		sess.SetConn(Player1, "conn-a")
		sess.SetConn(Player2, "conn-b")

		reason := JoinBlockReason(m, sess)
		if !strings.Contains(reason, "currently active") {
			t.Errorf("Expected both-connected reason, got %q", reason)
		}
	})

	t.Run("reasons echo occupant names", func(t *testing.T) {
		m := &store.Match{ID: "m1", Player1: "alice", Player2: "bob"}
		reason := JoinBlockReason(m, nil)
		if !strings.Contains(reason, "alice") || !strings.Contains(reason, "bob") {
			t.Errorf("Expected occupant names in reason, got %q", reason)
		}
	})
}
