package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dinesh-mca12/tohnew/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Envelope is the wire shape of every message in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound pairs an event name with its payload for marshaling.
type outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Hub maintains the set of active clients, keyed into per-match rooms and
// an admin room. It implements service.Broadcaster.
type Hub struct {
	logger *log.Logger

	mu     sync.Mutex
	rooms  map[string]map[*Client]bool
	admins map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		rooms:  make(map[string]map[*Client]bool),
		admins: make(map[*Client]bool),
	}
}

// ServeWS upgrades an HTTP request and starts the client pumps. Each
// connection gets a unique ID that doubles as its presence handle in the
// session layer.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, svc service.MatchService) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		hub:     h,
		conn:    conn,
		service: svc,
		send:    make(chan []byte, 256),
	}

	go client.writePump()
	go client.readPump()
}

// ToMatch sends an event to every client in a match's private room.
func (h *Hub) ToMatch(matchID, event string, payload any) {
	data, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to marshal broadcast", "event", event, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.rooms[matchID] {
		h.deliverLocked(client, data)
	}
}

// ToAdmins sends an event to every authenticated admin client.
func (h *Hub) ToAdmins(event string, payload any) {
	data, err := json.Marshal(outbound{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to marshal admin broadcast", "event", event, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.admins {
		h.deliverLocked(client, data)
	}
}

// joinRoom moves a client into a match room, leaving any previous one.
// client.matchID is only written here, under the hub lock.
func (h *Hub) joinRoom(client *Client, matchID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.matchID != "" && client.matchID != matchID {
		h.removeFromRoomLocked(client, client.matchID)
	}
	client.matchID = matchID

	if h.rooms[matchID] == nil {
		h.rooms[matchID] = make(map[*Client]bool)
	}
	h.rooms[matchID][client] = true
}

// registerAdmin adds a client to the admin room.
func (h *Hub) registerAdmin(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.admins[client] = true
}

// unregister removes a client from every room and closes its send
// channel.
func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.matchID != "" {
		h.removeFromRoomLocked(client, client.matchID)
	}
	if h.admins[client] {
		delete(h.admins, client)
	}
	if !client.closed {
		client.closed = true
		close(client.send)
	}
}

func (h *Hub) removeFromRoomLocked(client *Client, matchID string) {
	if clients, ok := h.rooms[matchID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, matchID)
		}
	}
}

// deliverLocked pushes marshaled data to a client without blocking. A
// client that cannot keep up is dropped; its read pump will clean up the
// session presence.
func (h *Hub) deliverLocked(client *Client, data []byte) {
	if client.closed {
		return
	}
	select {
	case client.send <- data:
	default:
		client.closed = true
		close(client.send)
	}
}
