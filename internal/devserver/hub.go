package devserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"unitip-client/internal/observability"
)

// hub fans room events out to websocket subscribers. Unlike a production
// broker there is no buffering beyond each subscriber's channel; a slow
// subscriber is dropped.
type hub struct {
	mu          sync.Mutex
	subscribers map[string]map[chan []byte]struct{} // roomID -> channels
}

func newHub() *hub {
	return &hub{subscribers: make(map[string]map[chan []byte]struct{})}
}

func (h *hub) subscribe(roomID string) chan []byte {
	ch := make(chan []byte, 16)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[roomID] == nil {
		h.subscribers[roomID] = make(map[chan []byte]struct{})
	}
	h.subscribers[roomID][ch] = struct{}{}
	observability.RealtimeConnectionsActive.WithLabelValues(roomID).Inc()
	return ch
}

func (h *hub) unsubscribe(roomID string, ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subscribers[roomID]; ok {
		if _, ok := subs[ch]; ok {
			delete(subs, ch)
			close(ch)
			observability.RealtimeConnectionsActive.WithLabelValues(roomID).Dec()
		}
		if len(subs) == 0 {
			delete(h.subscribers, roomID)
		}
	}
}

// publish sends an event to every subscriber of a room. Subscribers with a
// full channel are skipped rather than blocked on.
func (h *hub) publish(roomID string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		observability.Error("failed to encode room event", "room_id", roomID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[roomID] {
		select {
		case ch <- data:
		default:
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dev server accepts any origin; it only ever runs locally.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serveRoomEvents upgrades the connection and forwards room events until the
// client goes away.
func (s *Server) serveRoomEvents(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	ch := s.hub.subscribe(roomID)
	defer s.hub.unsubscribe(roomID, ch)

	// Drain reads so close frames are processed; the stream is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for data := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
