// Package websocket pushes per-cycle prediction results to connected UI
// clients.
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skysight-labs/runwaycast/internal/adsb"
	"github.com/skysight-labs/runwaycast/internal/prediction"
	"github.com/skysight-labs/runwaycast/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Message is the envelope for everything sent over the socket.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Server is a fan-out hub for websocket clients. It implements the adsb
// Broadcaster interface.
type Server struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a websocket hub.
func NewServer(log *logger.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS middleware upstream
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  log.Named("websocket"),
		clients: make(map[*client]struct{}),
	}
}

// HandleConnection upgrades an HTTP request and registers the client. The
// latest batch is sent immediately so a new client does not wait a full poll
// cycle for its first picture.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request, latest *prediction.Batch) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", logger.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()

	s.logger.Debug("Client connected",
		logger.String("remote_addr", r.RemoteAddr),
		logger.Int("clients", count))

	if latest != nil {
		if payload, err := json.Marshal(Message{Type: "batch", Data: latest}); err == nil {
			c.send <- payload
		}
	}

	go s.writePump(c)
	go s.readPump(c)
}

// BroadcastBatch sends the full batch plus the per-cycle diff to every
// connected client.
func (s *Server) BroadcastBatch(batch *prediction.Batch, changes []adsb.Change) {
	payload, err := json.Marshal(Message{Type: "batch", Data: batch})
	if err != nil {
		s.logger.Error("Failed to marshal batch", logger.Error(err))
		return
	}
	s.broadcast(payload)

	if len(changes) > 0 {
		payload, err := json.Marshal(Message{Type: "changes", Data: changes})
		if err != nil {
			s.logger.Error("Failed to marshal changes", logger.Error(err))
			return
		}
		s.broadcast(payload)
	}
}

// broadcast queues a payload for every client. Clients whose send buffer is
// full are dropped; a stuck reader must not stall the poll loop.
func (s *Server) broadcast(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			delete(s.clients, c)
			close(c.send)
		}
	}
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

// readPump discards inbound messages and watches for disconnects.
func (s *Server) readPump(c *client) {
	defer func() {
		s.removeClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
