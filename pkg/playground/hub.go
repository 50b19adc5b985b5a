package playground

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/declarative/pkg/metrics"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// MessageType identifies a live message.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to browsers over the live socket.
type Message struct {
	Type     MessageType `json:"type"`
	Version  uint64      `json:"version,omitempty"`
	HTML     string      `json:"html,omitempty"`
	Selected string      `json:"selected,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// offer queues data without blocking. It reports false when the buffer is
// full.
func (c *client) offer(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub manages live WebSocket connections and pushes every new frame to them.
type Hub struct {
	clients  map[*client]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	// current supplies the frame sent to a client when it connects.
	current func() Frame
}

// NewHub creates a hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the connection and streams frames until the
// client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	// Register before queueing the current frame so no broadcast falls
	// between the two; clients drop frames with an older version.
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.RecordClients(1)
	h.logger.Debug("live client connected", "clients", n)

	if h.current != nil {
		if data, err := encode(frameMessage(h.current())); err == nil {
			c.offer(data)
		}
	}

	go h.writePump(c)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		metrics.RecordClients(-1)
	}
	c.close()
}

// Broadcast queues f for every connected client. Clients that cannot keep
// up are dropped.
func (h *Hub) Broadcast(f Frame) {
	h.send(frameMessage(f))
	metrics.RecordBroadcast()
}

// NotifyError sends an error message to all clients.
func (h *Hub) NotifyError(err error) {
	h.send(Message{Type: MessageError, Error: err.Error()})
}

func (h *Hub) send(msg Message) {
	data, err := encode(msg)
	if err != nil {
		h.logger.Error("encode live message", "error", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.offer(data) {
			h.logger.Warn("dropping slow live client")
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		metrics.RecordClients(-1)
		c.close()
	}
}

func frameMessage(f Frame) Message {
	return Message{Type: MessageRender, Version: f.Version, HTML: f.HTML, Selected: f.Selected}
}

func encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
