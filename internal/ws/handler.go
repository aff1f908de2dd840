package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/playday/gameserver/internal/game"
	"github.com/playday/gameserver/internal/identity"
	"github.com/playday/gameserver/internal/match"
)

// seat is a player's stable address in a match. It routes through the hub so
// delivery always targets the player's current connection.
type seat struct {
	hub      *Hub
	playerID string
	rating   int
}

func (s seat) PlayerID() string      { return s.playerID }
func (s seat) Rating() int           { return s.rating }
func (s seat) Send(v interface{})    { s.hub.SendToPlayer(s.playerID, v) }
func (s seat) SendState(data []byte) { s.hub.SendStateToPlayer(s.playerID, data) }

// Server coordinates player sessions: identity on connect, matchmaking and
// input dispatch while connected, queue removal and forfeit on disconnect.
type Server struct {
	hub        *Hub
	registry   *match.Registry
	matchmaker *match.Matchmaker
	identity   identity.Provider
}

func NewServer(registry *match.Registry, matchmaker *match.Matchmaker, provider identity.Provider) *Server {
	return &Server{
		hub:        NewHub(),
		registry:   registry,
		matchmaker: matchmaker,
		identity:   provider,
	}
}

// HandleWebSocket upgrades the connection and starts the session. The
// identity token is optional; without one the player joins as a guest.
func (s *Server) HandleWebSocket(c *gin.Context) {
	id, err := s.identity.Resolve(c.Request.Context(), c.Query("token"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := newClient(conn, id.PlayerID, id.Rating)
	s.hub.add(client)
	log.Printf("[WS] Player %s connected (rating %d)", id.PlayerID, id.Rating)

	go client.writePump()

	// First message of every session: the server-assigned identity.
	client.enqueue(match.PlayerIDMessage{Type: match.TypePlayerID, ID: id.PlayerID})

	go s.readPump(client)
}

// readPump reads and dispatches until the connection drops, then tears the
// session down.
func (s *Server) readPump(client *Client) {
	defer s.disconnect(client)

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error for player %s: %v", client.playerID, err)
			}
			return
		}
		s.dispatch(client, data)
	}
}

func (s *Server) dispatch(client *Client, data []byte) {
	msg, err := decodeInbound(data)
	if err != nil {
		client.enqueue(match.ErrorMessage{Type: match.TypeError, Message: err.Error()})
		return
	}

	switch req := msg.(type) {
	case MatchFindRequest:
		s.matchmaker.RequestMatch(seat{hub: s.hub, playerID: client.playerID, rating: client.rating})

	case InputRequest:
		in := game.Input{
			Tick:     req.ClientTick,
			PlayerID: client.playerID,
			Kind:     game.ActionKind(req.Action),
			Force:    req.Force,
			Angle:    req.Angle,
		}
		if err := s.registry.SubmitInput(client.playerID, in); err != nil {
			// In-match rejections already answered with a corrective
			// snapshot; only a player with no match gets an explicit error.
			if err == match.ErrUnknownPlayer {
				client.enqueue(match.ErrorMessage{Type: match.TypeError, Message: err.Error()})
			}
			log.Printf("[WS] Input rejected for player %s: %v", client.playerID, err)
		}
	}
}

// disconnect runs once per connection. A replaced connection unwinds without
// touching the player's queue entry or match.
func (s *Server) disconnect(client *Client) {
	client.conn.Close()
	if !s.hub.drop(client) {
		return
	}

	log.Printf("[WS] Player %s disconnected", client.playerID)
	s.matchmaker.Remove(client.playerID)
	s.registry.HandleDisconnect(client.playerID)
}
