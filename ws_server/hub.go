package wsserver

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// Maximum inbound message size in bytes
	maxMessageSize = 8192
	// Outbound messages buffered per connection before it counts as a slow consumer
	sendBufferSize = 256
)

// A single WebSocket connection and its outbound queue.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

// Closes the connection. The read loop then fails and runs the disconnect cleanup.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Drains the outbound queue onto the socket and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Error writing to %s: %v\n", c.id, err)
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

// Hub maps connection ids to live connections and delivers outbound messages.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues msg for a connection without blocking.
// A connection whose queue is full is closed.
func (h *Hub) Send(connID string, msg any) {
	h.Broadcast([]string{connID}, msg)
}

// Broadcast encodes msg once and queues it for every listed connection.
// Unknown connections are skipped.
func (h *Hub) Broadcast(connIDs []string, msg any) {
	if len(connIDs) == 0 {
		return
	}

	jsonData, jsonErr := json.Marshal(msg)
	if jsonErr != nil {
		log.Println("Error Marshalling data:", jsonErr)
		return
	}

	for _, connID := range connIDs {
		h.deliver(connID, jsonData)
	}
}

func (h *Hub) deliver(connID string, jsonData []byte) {
	h.mu.RLock()
	c, exists := h.clients[connID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	select {
	case c.send <- jsonData:
	case <-c.done:
	default:
		log.Printf("Connection %s is not keeping up, closing\n", connID)
		c.close()
	}
}
