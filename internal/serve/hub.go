package serve

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Hub fans live reload messages out to connected browsers.
type Hub struct {
	mu        sync.Mutex
	clients   map[chan string]struct{}
	done      chan struct{}
	closeOnce sync.Once
	upgrader  websocket.Upgrader
	logger    *logrus.Entry
}

// NewHub creates an empty hub.
func NewHub(logger *logrus.Entry) *Hub {
	return &Hub{
		clients: make(map[chan string]struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Subscribe registers a client channel.
func (h *Hub) Subscribe() chan string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan string, 8)
	h.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

// Broadcast sends msg to every client and returns how many received it.
// Clients whose buffer is full miss the message.
func (h *Hub) Broadcast(msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for ch := range h.clients {
		select {
		case ch <- msg:
			sent++
		default:
		}
	}
	return sent
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ServeHTTP upgrades the request to a websocket and forwards broadcasts
// until the browser goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}

	ch := h.Subscribe()
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		// Reads only drain control frames and detect the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	defer func() {
		h.Unsubscribe(ch)
		conn.Close()
		<-gone
	}()

	h.logger.Debug("Live reload client connected")

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-gone:
			h.logger.Debug("Live reload client disconnected")
			return
		case <-h.done:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
