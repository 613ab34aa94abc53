package repository

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
)

// ChatRepository exposes the chat operations of the Unitip API.
type ChatRepository struct {
	client *api.Client
}

// NewChatRepository creates a chat repository backed by the given API client.
func NewChatRepository(client *api.Client) *ChatRepository {
	return &ChatRepository{client: client}
}

// Wire shapes for the chat endpoints.

type roomUserDTO struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	LastReadMessageID string `json:"lastReadMessageId"`
}

type roomDTO struct {
	ID                 string      `json:"id"`
	LastMessage        string      `json:"lastMessage"`
	LastSentUserID     string      `json:"lastSentUserId"`
	CreatedAt          string      `json:"createdAt"`
	UpdatedAt          string      `json:"updatedAt"`
	UnreadMessageCount int         `json:"unreadMessageCount"`
	OtherUser          roomUserDTO `json:"otherUser"`
}

type getAllRoomsResponse struct {
	Rooms []roomDTO `json:"rooms"`
}

type sendMessagePayload struct {
	ID                      string `json:"id"`
	Message                 string `json:"message"`
	OtherID                 string `json:"otherId"`
	OtherUnreadMessageCount int    `json:"otherUnreadMessageCount"`
}

type sendMessageResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type messageDTO struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsDeleted bool   `json:"isDeleted"`
	RoomID    string `json:"roomId"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type getAllMessagesResponse struct {
	OtherUser roomUserDTO  `json:"otherUser"`
	Messages  []messageDTO `json:"messages"`
}

type updateReadCheckpointPayload struct {
	LastReadMessageID string `json:"lastReadMessageId"`
}

type readCheckpointResponse struct {
	ID                string `json:"id"`
	RoomID            string `json:"roomId"`
	UserID            string `json:"userId"`
	LastReadMessageID string `json:"lastReadMessageId"`
}

type createRoomPayload struct {
	Members []string `json:"members"`
}

type createRoomResponse struct {
	ID string `json:"id"`
}

type checkRoomResponse struct {
	RoomID *string `json:"roomId"`
}

// GetAllRooms lists the caller's chat rooms, most recently active first.
func (r *ChatRepository) GetAllRooms(ctx context.Context) ([]domain.Room, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/chats/rooms",
		Operation: "chat.get_all_rooms",
	}, mappedEmptyBody, func(body *getAllRoomsResponse) []domain.Room {
		rooms := make([]domain.Room, 0, len(body.Rooms))
		for _, room := range body.Rooms {
			rooms = append(rooms, domain.Room{
				ID:                 room.ID,
				LastMessage:        room.LastMessage,
				LastSentUserID:     room.LastSentUserID,
				CreatedAt:          room.CreatedAt,
				UpdatedAt:          room.UpdatedAt,
				UnreadMessageCount: room.UnreadMessageCount,
				OtherUser: domain.RoomUser{
					ID:   room.OtherUser.ID,
					Name: room.OtherUser.Name,
				},
			})
		}
		return rooms
	})
}

// SendMessage delivers one chat message to a room. The message id is chosen
// by the caller so the backend can deduplicate redeliveries.
func (r *ChatRepository) SendMessage(
	ctx context.Context,
	roomID string,
	id string,
	message string,
	otherID string,
	otherUnreadMessageCount int,
) (domain.SentMessage, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method: http.MethodPost,
		Path:   "/chats/rooms/" + url.PathEscape(roomID) + "/messages",
		Payload: sendMessagePayload{
			ID:                      id,
			Message:                 message,
			OtherID:                 otherID,
			OtherUnreadMessageCount: otherUnreadMessageCount,
		},
		Operation: "chat.send_message",
	}, mappedEmptyBody, func(body *sendMessageResponse) domain.SentMessage {
		return domain.SentMessage{
			ID:        body.ID,
			Message:   body.Message,
			CreatedAt: body.CreatedAt,
			UpdatedAt: body.UpdatedAt,
		}
	})
}

// GetAllMessages returns the conversation in a room together with the other
// user's read position.
func (r *ChatRepository) GetAllMessages(ctx context.Context, roomID string) (domain.RoomMessages, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/chats/rooms/" + url.PathEscape(roomID) + "/messages",
		Operation: "chat.get_all_messages",
	}, mappedEmptyBody, func(body *getAllMessagesResponse) domain.RoomMessages {
		messages := make([]domain.Message, 0, len(body.Messages))
		for _, msg := range body.Messages {
			messages = append(messages, domain.Message{
				ID:        msg.ID,
				Message:   msg.Message,
				IsDeleted: msg.IsDeleted,
				RoomID:    msg.RoomID,
				UserID:    msg.UserID,
				CreatedAt: msg.CreatedAt,
				UpdatedAt: msg.UpdatedAt,
			})
		}
		return domain.RoomMessages{
			OtherUser: domain.RoomUser{
				ID:                body.OtherUser.ID,
				LastReadMessageID: body.OtherUser.LastReadMessageID,
			},
			Messages: messages,
		}
	})
}

// UpdateReadCheckpoint marks everything up to lastReadMessageID as read.
func (r *ChatRepository) UpdateReadCheckpoint(ctx context.Context, roomID, lastReadMessageID string) (domain.ReadCheckpoint, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodPatch,
		Path:      "/chats/rooms/" + url.PathEscape(roomID) + "/read-checkpoint",
		Payload:   updateReadCheckpointPayload{LastReadMessageID: lastReadMessageID},
		Operation: "chat.update_read_checkpoint",
	}, mappedEmptyBody, func(body *readCheckpointResponse) domain.ReadCheckpoint {
		return domain.ReadCheckpoint{
			ID:                body.ID,
			RoomID:            body.RoomID,
			UserID:            body.UserID,
			LastReadMessageID: body.LastReadMessageID,
		}
	})
}

// CreateRoom creates a room for the given member ids and returns the new
// room's id.
func (r *ChatRepository) CreateRoom(ctx context.Context, members []string) (string, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodPost,
		Path:      "/chats/rooms",
		Payload:   createRoomPayload{Members: members},
		Operation: "chat.create_room",
	}, rejectedEmptyBody, func(body *createRoomResponse) string {
		return body.ID
	})
}

// CheckRoom looks up an existing room for the given members. A nil room id is
// a valid success: it means no room exists yet, and the caller should create
// one before sending.
func (r *ChatRepository) CheckRoom(ctx context.Context, members []string) (*string, *domain.Failure) {
	query := url.Values{}
	query.Set("members", strings.Join(members, ","))

	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/chats/rooms/check",
		Query:     query,
		Operation: "chat.check_room",
	}, rejectedEmptyBody, func(body *checkRoomResponse) *string {
		return body.RoomID
	})
}
