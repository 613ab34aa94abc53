// Package realtime subscribes to a chat room's message events over a
// websocket. It is a read-only stream: delivery of new messages still goes
// through the chat repository, and reconnecting after a drop is the caller's
// decision.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"unitip-client/internal/domain"
	"unitip-client/internal/observability"
)

const (
	handshakeTimeout = 10 * time.Second
	readWait         = 120 * time.Second
)

// Event is one room event pushed by the backend.
type Event struct {
	Type    string
	Message *domain.Message
}

// Wire shape of a pushed event, camelCase like the REST endpoints.
type eventDTO struct {
	Type    string `json:"type"`
	Message *struct {
		ID        string `json:"id"`
		Message   string `json:"message"`
		IsDeleted bool   `json:"isDeleted"`
		RoomID    string `json:"roomId"`
		UserID    string `json:"userId"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	} `json:"message"`
}

func mapEvent(dto eventDTO) Event {
	event := Event{Type: dto.Type}
	if dto.Message != nil {
		event.Message = &domain.Message{
			ID:        dto.Message.ID,
			Message:   dto.Message.Message,
			IsDeleted: dto.Message.IsDeleted,
			RoomID:    dto.Message.RoomID,
			UserID:    dto.Message.UserID,
			CreatedAt: dto.Message.CreatedAt,
			UpdatedAt: dto.Message.UpdatedAt,
		}
	}
	return event
}

// Event types pushed by the backend.
const (
	EventMessage        = "message"
	EventReadCheckpoint = "read_checkpoint"
)

// Client subscribes to room event streams.
type Client struct {
	baseURL  string
	sessions domain.SessionReader
	dialer   *websocket.Dialer
}

// NewClient creates a realtime client for the given API base URL. The base
// URL is the same http(s) one the API client uses; the scheme is rewritten
// for the websocket dial.
func NewClient(baseURL string, sessions domain.SessionReader) *Client {
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}
}

// Subscribe opens the event stream for one room and delivers events on the
// returned channel until the context is cancelled or the connection drops.
// The channel is closed in either case.
func (c *Client) Subscribe(ctx context.Context, roomID string) (<-chan Event, error) {
	u := wsURL(c.baseURL) + "/chats/rooms/" + roomID + "/events"

	header := http.Header{}
	token := ""
	if sess, ok := c.sessions.Read(); ok {
		token = sess.Token
	}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := c.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("subscribe rejected with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	events := make(chan Event, 16)

	// Cancellation must abort the in-flight read; closing the connection
	// unblocks ReadMessage.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		for {
			if err := conn.SetReadDeadline(time.Now().Add(readWait)); err != nil {
				return
			}
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					observability.FromContext(ctx).Warn("event stream closed",
						"room_id", roomID, "error", err)
				}
				return
			}

			var dto eventDTO
			if err := json.Unmarshal(data, &dto); err != nil {
				observability.FromContext(ctx).Warn("dropping malformed event",
					"room_id", roomID, "error", err)
				continue
			}

			select {
			case events <- mapEvent(dto):
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

func wsURL(baseURL string) string {
	switch {
	case strings.HasPrefix(baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(baseURL, "https://")
	case strings.HasPrefix(baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(baseURL, "http://")
	default:
		return baseURL
	}
}
