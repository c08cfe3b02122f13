package realtime

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub tracks the websocket dashboard listeners of this process and
// rebroadcasts fan-out messages to them. Delivery is best effort and
// at most once: a listener that cannot keep up is dropped, nothing is
// persisted or replayed.
type Hub struct {
	logger       *zap.Logger
	writeTimeout time.Duration
	sendBuffer   int
	upgrader     websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}
}

type client struct {
	conn *websocket.Conn
	send chan string
}

// HubConfig tunes the hub.
type HubConfig struct {
	AllowedOrigins []string
	WriteTimeout   time.Duration
	SendBuffer     int
}

// NewHub constructs a hub. An empty origin list allows every origin.
func NewHub(cfg HubConfig, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}

	allowAll := len(cfg.AllowedOrigins) == 0
	originSet := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return &Hub{
		logger:       logger,
		writeTimeout: cfg.WriteTimeout,
		sendBuffer:   cfg.SendBuffer,
		clients:      make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := originSet[strings.TrimRight(origin, "/")]
				return ok
			},
		},
	}
}

// HandleWS upgrades the request and serves the connection until it
// closes.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, send: make(chan string, h.sendBuffer)}

	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("dashboard listener connected", zap.Int("listeners", h.ListenerCount()))

	go h.writePump(cl)
	h.readPump(cl)
}

// Broadcast delivers a message to every connected listener.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		h.offer(cl, message)
	}
}

// ListenerCount reports the number of connected listeners.
func (h *Hub) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcastExcept(sender *client, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		if cl == sender {
			continue
		}
		h.offer(cl, message)
	}
}

// offer drops the message when the listener's buffer is full.
func (h *Hub) offer(cl *client, message string) {
	select {
	case cl.send <- message:
	default:
		h.logger.Debug("listener buffer full, message dropped")
	}
}

func (h *Hub) readPump(cl *client) {
	defer h.drop(cl)

	for {
		kind, payload, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		// Relay traffic: the sender is excluded from the rebroadcast.
		name, rest := splitEvent(string(payload))
		switch name {
		case EventToApp:
			h.broadcastExcept(cl, EventFromWeb+","+rest)
		case EventToWeb:
			h.broadcastExcept(cl, EventFromApp+","+rest)
		}
	}
}

func (h *Hub) writePump(cl *client) {
	for message := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := cl.conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			return
		}
	}
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	_ = cl.conn.Close()
}
