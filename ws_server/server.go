package wsserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"qerplunk/garin-draw/coordinator"
	"qerplunk/garin-draw/types"
	ratelimiter "qerplunk/garin-draw/ws_server/rate_limiter"
)

// Upgrades HTTP connection to WebSocket connection
// Returns true as a middleware is already used to check for the origin
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler consumes client events. Implemented by the coordinator.
type Handler interface {
	Handle(connID string, msg types.Message) error
	Disconnect(connID string)
}

type Server struct {
	hub                  *Hub
	handler              Handler
	maxMessagesPerSecond int
	joinTimeout          time.Duration
}

// NewServer wires the transport to a handler. Outbound messages from the
// handler must go through hub. A zero joinTimeout disables the join deadline.
func NewServer(hub *Hub, handler Handler, maxMessagesPerSecond int, joinTimeout time.Duration) *Server {
	return &Server{
		hub:                  hub,
		handler:              handler,
		maxMessagesPerSecond: maxMessagesPerSecond,
		joinTimeout:          joinTimeout,
	}
}

// The basic HTTP connection, not WebSocket yet
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, connErr := upgrader.Upgrade(w, r, nil)

	if connErr != nil {
		log.Println("Error upgrading connection:", connErr)
		return
	}

	go s.handleConnection(conn)
}

// Handles a WebSocket connection instance
func (s *Server) handleConnection(conn *websocket.Conn) {
	c := newClient(uuid.NewString(), conn)
	s.hub.add(c)
	log.Printf("CONNECT: %s\n", c.id)

	defer func() {
		s.handler.Disconnect(c.id)
		s.hub.remove(c.id)
		c.close()
		log.Printf("End of WebSocket session for %s\n", c.id)
	}()

	go c.writePump()

	// Users have to join a room before the deadline or get disconnected
	var joinTimer *time.Timer
	if s.joinTimeout > 0 {
		joinTimer = time.AfterFunc(s.joinTimeout, func() {
			log.Printf("Join timeout for %s\n", c.id)
			c.close()
		})
		defer joinTimer.Stop()
	}

	rateLimiter := ratelimiter.NewRateLimiter(s.maxMessagesPerSecond)
	hasJoined := false

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading message from %s: %v\n", c.id, err)
			}
			return
		}

		// Update rate limiter here to also limit invalid messages getting received
		if !rateLimiter.AllowMessage() {
			log.Printf("Rate limit exceeded by %s, closing connection\n", c.id)
			return
		}

		var msg types.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshalling message from %s: %v\n", c.id, err)
			return
		}

		if err := s.handler.Handle(c.id, msg); err != nil {
			log.Printf("Dropped '%s' from %s: %v\n", msg.Type, c.id, err)
			if errors.Is(err, coordinator.ErrUnknownType) {
				return
			}
			continue
		}

		// Repeat joins count towards the rate limiter like any other message
		if msg.Type == types.MsgJoin && !hasJoined {
			hasJoined = true
			if joinTimer != nil {
				joinTimer.Stop()
			}
			// Don't count the join message towards the rate limiter
			rateLimiter.Reset()
		}
	}
}
