package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ericogr/agent-arena/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	clientBuffer = 16
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub broadcasts events to connected websocket clients. Slow clients whose
// buffer is full are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan []byte)}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, nil)
		return
	}
	send := make(chan []byte, clientBuffer)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

// readLoop discards client frames and unregisters on disconnect.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, send <-chan []byte) {
	for msg := range send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(conn)
			conn.Close()
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
}

func (h *Hub) Publish(e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- data:
		default:
			delete(h.clients, conn)
			close(send)
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
	}
}
