package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// Client is one live WebSocket connection. Events queue in send; state
// updates go through a one-slot channel where the newest snapshot replaces
// any undelivered one, so a slow reader only ever lags by a single tick.
type Client struct {
	conn     *websocket.Conn
	playerID string
	rating   int
	send     chan []byte
	state    chan []byte
}

func newClient(conn *websocket.Conn, playerID string, rating int) *Client {
	return &Client{
		conn:     conn,
		playerID: playerID,
		rating:   rating,
		send:     make(chan []byte, 256),
		state:    make(chan []byte, 1),
	}
}

func (c *Client) enqueue(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WS] Error marshaling message for player %s: %v", c.playerID, err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Send buffer full for player %s, dropping message", c.playerID)
	}
}

func (c *Client) enqueueState(data []byte) {
	if data == nil {
		return
	}
	for {
		select {
		case c.state <- data:
			return
		default:
			// Discard the stale snapshot and retry with the newer one.
			select {
			case <-c.state:
			default:
			}
		}
	}
}

// writePump drains both queues to the connection and keeps it alive with
// pings. One writer goroutine per connection.
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for player %s: %v", c.playerID, err)
				return
			}

		case snapshot := <-c.state:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
				log.Printf("[WS] State write error for player %s: %v", c.playerID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for player %s: %v", c.playerID, err)
				return
			}
		}
	}
}

// Hub tracks the current connection per player.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// SendToPlayer queues an event message for the player's current connection.
func (h *Hub) SendToPlayer(playerID string, v interface{}) {
	h.mu.RLock()
	client, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		log.Printf("[WS] SendToPlayer: no client for player %s", playerID)
		return
	}
	client.enqueue(v)
}

// SendStateToPlayer queues a snapshot for the player's current connection.
func (h *Hub) SendStateToPlayer(playerID string, data []byte) {
	h.mu.RLock()
	client, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	client.enqueueState(data)
}

// add installs a client, closing any previous connection for the same
// player. Returns true if this replaced an existing connection.
func (h *Hub) add(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	replaced := false
	if old, exists := h.clients[client.playerID]; exists {
		log.Printf("[WS] Player %s reconnecting - closing old connection", client.playerID)
		old.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"),
			time.Now().Add(5*time.Second))
		old.conn.Close()
		replaced = true
	}
	h.clients[client.playerID] = client
	return replaced
}

// drop removes the client if it is still the player's current connection.
// Returns false for connections already replaced by a reconnect.
func (h *Hub) drop(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.clients[client.playerID]; ok && cur == client {
		delete(h.clients, client.playerID)
		return true
	}
	return false
}
