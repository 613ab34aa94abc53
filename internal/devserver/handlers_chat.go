package devserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Wire shapes mirror what the mobile and CLI clients expect: camelCase keys,
// rooms/messages wrapped in envelopes, and a nullable roomId on check.

type wireRoomUser struct {
	ID                string `json:"id"`
	Name              string `json:"name,omitempty"`
	LastReadMessageID string `json:"lastReadMessageId,omitempty"`
}

type wireRoom struct {
	ID                 string       `json:"id"`
	LastMessage        string       `json:"lastMessage"`
	LastSentUserID     string       `json:"lastSentUserId"`
	CreatedAt          string       `json:"createdAt"`
	UpdatedAt          string       `json:"updatedAt"`
	UnreadMessageCount int          `json:"unreadMessageCount"`
	OtherUser          wireRoomUser `json:"otherUser"`
}

type wireMessage struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsDeleted bool   `json:"isDeleted"`
	RoomID    string `json:"roomId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleGetAllRooms(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())

	rooms := s.store.RoomsFor(u.ID)
	out := make([]wireRoom, 0, len(rooms))
	for _, room := range rooms {
		otherID := room.OtherMember(u.ID)
		other := wireRoomUser{ID: otherID}
		if otherUser, ok := s.store.User(otherID); ok {
			other.Name = otherUser.Name
		}
		out = append(out, wireRoom{
			ID:                 room.ID,
			LastMessage:        room.LastMessage,
			LastSentUserID:     room.LastSentUserID,
			CreatedAt:          room.CreatedAt,
			UpdatedAt:          room.UpdatedAt,
			UnreadMessageCount: s.store.UnreadCount(room.ID, u.ID),
			OtherUser:          other,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

type createRoomRequest struct {
	Members []string `json:"members"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Members) != 2 {
		writeError(w, http.StatusBadRequest, "a room needs exactly two members")
		return
	}

	id := s.store.CreateRoom(req.Members)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleCheckRoom(w http.ResponseWriter, r *http.Request) {
	members := strings.Split(r.URL.Query().Get("members"), ",")
	if len(members) != 2 {
		writeError(w, http.StatusBadRequest, "members must list exactly two user ids")
		return
	}

	// No existing room is reported as a null roomId on a success status,
	// not as an error.
	var roomID *string
	if id := s.store.FindRoom(members); id != "" {
		roomID = &id
	}
	writeJSON(w, http.StatusOK, map[string]*string{"roomId": roomID})
}

type sendMessageRequest struct {
	ID                      string `json:"id"`
	Message                 string `json:"message"`
	OtherID                 string `json:"otherId"`
	OtherUnreadMessageCount int    `json:"otherUnreadMessageCount"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())
	roomID := chi.URLParam(r, "roomID")

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	msg, err := s.store.AddMessage(roomID, req.ID, u.ID, req.Message, req.OtherID, req.OtherUnreadMessageCount)
	if err != nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	s.hub.publish(roomID, map[string]any{
		"type": "message",
		"message": wireMessage{
			ID:        msg.ID,
			Message:   msg.Message,
			RoomID:    msg.RoomID,
			UserID:    msg.UserID,
			CreatedAt: msg.CreatedAt,
			UpdatedAt: msg.UpdatedAt,
		},
	})

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        msg.ID,
		"message":   msg.Message,
		"createdAt": msg.CreatedAt,
		"updatedAt": msg.UpdatedAt,
	})
}

func (s *Server) handleGetAllMessages(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())
	roomID := chi.URLParam(r, "roomID")

	room, ok := s.store.Room(roomID)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	msgs := s.store.Messages(roomID)
	out := make([]wireMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, wireMessage{
			ID:        m.ID,
			Message:   m.Message,
			IsDeleted: m.IsDeleted,
			RoomID:    m.RoomID,
			UserID:    m.UserID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}

	otherID := room.OtherMember(u.ID)
	other := wireRoomUser{ID: otherID}
	if cp, ok := s.store.Checkpoint(roomID, otherID); ok {
		other.LastReadMessageID = cp.LastReadMessageID
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"otherUser": other,
		"messages":  out,
	})
}

type updateReadCheckpointRequest struct {
	LastReadMessageID string `json:"lastReadMessageId"`
}

func (s *Server) handleUpdateReadCheckpoint(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())
	roomID := chi.URLParam(r, "roomID")

	var req updateReadCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cp, err := s.store.SetCheckpoint(roomID, u.ID, req.LastReadMessageID)
	if err != nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	s.hub.publish(roomID, map[string]any{
		"type": "read_checkpoint",
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"id":                cp.ID,
		"roomId":            cp.RoomID,
		"userId":            cp.UserID,
		"lastReadMessageId": cp.LastReadMessageID,
	})
}

func (s *Server) handleRoomEvents(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if _, ok := s.store.Room(roomID); !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	s.serveRoomEvents(w, r, roomID)
}
