// internal/app/system/sensorfeed/hub.go
package sensorfeed

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 4
)

type client struct {
	conn  *websocket.Conn
	send  chan []byte
	token string
	seq   uint64
	once  sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans snapshots out to websocket subscribers. Each subscriber
// registers the backend token of its session; the poller borrows the
// most recently registered one.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	seq      uint64
	last     []byte
	upgrader websocket.Upgrader
	log      *zap.Logger
	joined   chan struct{}
	onCount  func(int)
}

// NewHub builds an empty hub. onCount, when non-nil, is called with the
// subscriber count after every change.
func NewHub(logger *zap.Logger, onCount func(int)) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log:     logger,
		joined:  make(chan struct{}, 1),
		onCount: onCount,
	}
}

// Joined fires (coalesced) whenever a subscriber registers.
func (h *Hub) Joined() <-chan struct{} { return h.joined }

// Serve upgrades the request and registers the connection under token.
// It returns once the connection is registered; pumps run in the
// background.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, token string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer), token: token}
	h.register(c)
	go h.writePump(c)
	go h.readPump(c)
	return nil
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.seq++
	c.seq = h.seq
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	n := len(h.clients)
	h.mu.Unlock()

	h.count(n)
	select {
	case h.joined <- struct{}{}:
	default:
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		c.close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.count(n)
	}
}

func (h *Hub) count(n int) {
	if h.onCount != nil {
		h.onCount(n)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Token returns the token of the newest subscriber, or "" when nobody
// is connected.
func (h *Hub) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var best *client
	for c := range h.clients {
		if best == nil || c.seq > best.seq {
			best = c
		}
	}
	if best == nil {
		return ""
	}
	return best.token
}

// Last returns the most recent broadcast payload.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Broadcast remembers msg as the latest snapshot and queues it for every
// subscriber. Subscribers whose queue is full are dropped.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	h.last = msg
	var dropped int
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			c.close()
			dropped++
		}
	}
	n := len(h.clients)
	h.mu.Unlock()

	if dropped > 0 {
		h.log.Warn("dropped slow live-feed subscribers", zap.Int("count", dropped))
		h.count(n)
	}
}

// DropToken disconnects every subscriber registered with token.
func (h *Hub) DropToken(token string) int {
	h.mu.Lock()
	var dropped int
	for c := range h.clients {
		if c.token == token {
			delete(h.clients, c)
			c.close()
			dropped++
		}
	}
	n := len(h.clients)
	h.mu.Unlock()
	if dropped > 0 {
		h.count(n)
	}
	return dropped
}

// Close disconnects everyone.
func (h *Hub) Close() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
	h.count(0)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

// readPump discards client messages; it exists to process control frames
// and notice disconnects.
func (h *Hub) readPump(c *client) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("live feed read error", zap.Error(err))
			}
			return
		}
	}
}
