package session

import (
	"sync"
	"testing"
	"time"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	sess := r.GetOrCreate("m1", 4, "alice", "bob")
	if sess.MatchID != "m1" || sess.DiskCount != 4 {
		t.Fatalf("Unexpected session: %+v", sess)
	}
	if sess.Name(Player1) != "alice" || sess.Name(Player2) != "bob" {
		t.Errorf("Names not mirrored from durable record")
	}

	t.Run("hit returns existing unmodified", func(t *testing.T) {
		again := r.GetOrCreate("m1", 8, "carol", "dave")
		if again != sess {
			t.Fatal("Expected the same session instance")
		}
		if again.DiskCount != 4 || again.Name(Player1) != "alice" {
			t.Error("Existing session was modified on a registry hit")
		}
	})

	t.Run("concurrent creation yields one session", func(t *testing.T) {
		r := NewRegistry()
		results := make([]*Session, 16)
		var wg sync.WaitGroup
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = r.GetOrCreate("race", 3, "", "")
			}(i)
		}
		wg.Wait()

		for i := 1; i < len(results); i++ {
			if results[i] != results[0] {
				t.Fatal("Concurrent GetOrCreate produced distinct sessions")
			}
		}
		if r.Count() != 1 {
			t.Errorf("Expected 1 session, got %d", r.Count())
		}
	})
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("missing"); ok {
		t.Error("Expected miss for unknown match")
	}

	r.GetOrCreate("m1", 3, "", "")
	if _, ok := r.Get("m1"); !ok {
		t.Error("Expected hit for known match")
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	r.GetOrCreate("m1", 3, "", "")
	r.GetOrCreate("m2", 4, "", "")

	r.Clear()

	if r.Count() != 0 {
		t.Errorf("Expected empty registry after clear, got %d", r.Count())
	}
	if _, ok := r.Get("m1"); ok {
		t.Error("Previously live match should be gone after clear")
	}
}

func TestRegistry_ReapIdle(t *testing.T) {
	r := NewRegistry()

	stale := r.GetOrCreate("stale", 3, "alice", "bob")
	stale.Lock()
	stale.LastEventAt = time.Now().Add(-2 * time.Hour)
	stale.Unlock()

	connected := r.GetOrCreate("connected", 3, "carol", "dave")
	connected.Lock()
	connected.LastEventAt = time.Now().Add(-2 * time.Hour)
	connected.SetConn(Player1, "conn-a")
	connected.Unlock()

	inFlight := r.GetOrCreate("in-flight", 3, "erin", "frank")
	inFlight.Lock()
	inFlight.Start(time.Now().UnixMilli())
	inFlight.SetStats(Player1, PlayerStats{Moves: 12, Accuracy: 100})
	inFlight.LastEventAt = time.Now().Add(-3 * time.Hour)
	inFlight.Unlock()

	finished := r.GetOrCreate("finished", 3, "grace", "henry")
	finished.Lock()
	finished.Start(time.Now().UnixMilli())
	finished.Finish("grace")
	finished.LastEventAt = time.Now().Add(-3 * time.Hour)
	finished.Unlock()

	fresh := r.GetOrCreate("fresh", 3, "", "")
	_ = fresh

	removed := r.ReapIdle(time.Hour)
	if removed != 2 {
		t.Fatalf("Expected 2 sessions reaped, got %d", removed)
	}
	if _, ok := r.Get("stale"); ok {
		t.Error("Stale session should have been reaped")
	}
	if _, ok := r.Get("connected"); !ok {
		t.Error("Session with a live connection must never be reaped")
	}
	if sess, ok := r.Get("in-flight"); !ok {
		t.Error("Started, unfinished session must never be reaped")
	} else if sess.Stats(Player1).Moves != 12 {
		t.Error("Recorded progress must survive the reaper")
	}
	if _, ok := r.Get("finished"); ok {
		t.Error("Idle ended session should have been reaped")
	}
	if _, ok := r.Get("fresh"); !ok {
		t.Error("Fresh session should survive the reaper")
	}
}

func TestSession_StartAndFinish(t *testing.T) {
	sess := New("m1", 4, "alice", "bob")
	sess.Lock()
	defer sess.Unlock()

	t.Run("start is idempotent", func(t *testing.T) {
		if !sess.Start(1000) {
			t.Fatal("First start should succeed")
		}
		if sess.Start(2000) {
			t.Error("Second start should be a no-op")
		}
		if sess.StartAt != 1000 {
			t.Errorf("StartAt moved on repeated start: %d", sess.StartAt)
		}
	})

	t.Run("first finish wins", func(t *testing.T) {
		if !sess.Finish("alice") {
			t.Fatal("First finish should succeed")
		}
		if sess.Finish("bob") {
			t.Error("Second finish should be a no-op")
		}
		if sess.Winner != "alice" || !sess.Ended {
			t.Errorf("Unexpected terminal state: winner=%q ended=%v", sess.Winner, sess.Ended)
		}
	})
}

func TestSession_ClearConn(t *testing.T) {
	sess := New("m1", 4, "alice", "bob")
	sess.Lock()
	defer sess.Unlock()

	sess.SetConn(Player1, "conn-a")

	t.Run("stale ID does not clear", func(t *testing.T) {
		if sess.ClearConn(Player1, "conn-old") {
			t.Error("Clearing with a stale connection ID should be a no-op")
		}
		if !sess.Connected(Player1) {
			t.Error("Connection should still be live")
		}
	})

	t.Run("matching ID clears, stats survive", func(t *testing.T) {
		sess.SetStats(Player1, PlayerStats{Moves: 7, Accuracy: 100})
		if !sess.ClearConn(Player1, "conn-a") {
			t.Fatal("Expected clear to succeed")
		}
		if sess.Connected(Player1) {
			t.Error("Connection should be gone")
		}
		if sess.Name(Player1) != "alice" || sess.Stats(Player1).Moves != 7 {
			t.Error("Name binding and stats must survive a disconnect")
		}
	})
}
