package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dinesh-mca12/tohnew/game/service"
	"github.com/dinesh-mca12/tohnew/game/session"
)

// Client is one WebSocket connection. Its ID doubles as the presence
// handle bound into the match session, so a takeover or reconnect can
// tell stale disconnects apart from live ones.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	service service.MatchService
	send    chan []byte

	// matchID is written by Hub.joinRoom under the hub lock; the other
	// fields are only touched by this client's read pump.
	matchID    string
	side       session.Side
	playerName string
	isAdmin    bool
	closed     bool
}

type joinRequest struct {
	MatchID    string `json:"matchId"`
	PlayerName string `json:"playerName"`
}

type startRequest struct {
	MatchID string `json:"matchId"`
}

type progressRequest struct {
	MatchID        string  `json:"matchId"`
	Moves          int     `json:"moves"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
	IsCompleted    bool    `json:"isCompleted"`
}

type adminAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// readPump pumps messages from the connection into the service layer.
// All events for one connection are applied in arrival order.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
		if c.matchID != "" && c.side != "" {
			c.service.Disconnect(context.Background(), c.matchID, c.side, c.id)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "err", err)
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.sendEvent(service.EventError, map[string]string{"message": "malformed message"})
			continue
		}
		c.dispatch(&env)
	}
}

// dispatch routes one inbound event.
func (c *Client) dispatch(env *Envelope) {
	ctx := context.Background()

	switch env.Event {
	case "match:join":
		var req joinRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			c.sendEvent(service.EventError, map[string]string{"message": "malformed join payload"})
			return
		}
		c.handleJoin(ctx, req)

	case "match:start":
		var req startRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			c.sendEvent(service.EventError, map[string]string{"message": "malformed start payload"})
			return
		}
		if _, err := c.service.ForceStart(ctx, req.MatchID); err != nil {
			c.sendEvent(service.EventError, map[string]string{"message": err.Error()})
		}

	case "match:progress":
		var req progressRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return // expected to be superseded by the next report
		}
		if c.side == "" || c.matchID == "" {
			return
		}
		c.service.RecordProgress(ctx, c.matchID, c.side, req.Moves, req.ElapsedSeconds, req.IsCompleted)

	case "admin:auth":
		var req adminAuthRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			c.sendEvent("admin:auth:error", map[string]string{"message": "malformed credentials"})
			return
		}
		c.handleAdminAuth(req)

	default:
		c.sendEvent(service.EventError, map[string]string{"message": "unknown event: " + env.Event})
	}
}

// handleJoin resolves a slot, binds this connection, and replies with the
// session state. The room membership is established before the state
// reply so later broadcasts are never missed.
func (c *Client) handleJoin(ctx context.Context, req joinRequest) {
	result, err := c.service.Connect(ctx, req.MatchID, req.PlayerName, c.id)
	if err != nil {
		c.sendEvent(service.EventError, map[string]string{"message": err.Error()})
		return
	}

	c.side = result.Side
	c.playerName = result.PlayerName
	c.hub.joinRoom(c, result.Snapshot.MatchID)

	c.sendEvent(service.EventState, service.StatePayload{
		Snapshot:   result.Snapshot,
		Side:       result.Side,
		PlayerName: result.PlayerName,
	})
	c.sendEvent(service.EventPresence, result.Presence)
}

// handleAdminAuth validates credentials and subscribes the client to the
// admin room, pushing the current live view immediately.
func (c *Client) handleAdminAuth(req adminAuthRequest) {
	if !c.service.AdminAuthorized(req.Username, req.Password) {
		c.sendEvent("admin:auth:error", map[string]string{"message": "Invalid admin credentials."})
		return
	}

	c.isAdmin = true
	c.hub.registerAdmin(c)
	c.sendEvent("admin:auth:ok", map[string]bool{"ok": true})
	c.sendEvent(service.EventAdminMatches, c.service.AdminSnapshots())
}

// sendEvent marshals and queues one event for this client only.
func (c *Client) sendEvent(event string, payload any) {
	data, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		c.hub.logger.Error("failed to marshal event", "event", event, "err", err)
		return
	}

	c.hub.mu.Lock()
	c.hub.deliverLocked(c, data)
	c.hub.mu.Unlock()
}

// writePump pumps queued messages to the connection and keeps it alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush queued messages into the same writer.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
