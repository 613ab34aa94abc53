package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
	"unitip-client/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, testutil.NewMemorySessionStore(testutil.TestSession()))
}

// unreachableClient simulates a network failure on every request.
func unreachableClient() *api.Client {
	return api.NewClient("http://127.0.0.1:1", testutil.NewMemorySessionStore(testutil.TestSession()))
}

func TestChatRepository_GetAllRooms(t *testing.T) {
	t.Run("maps_rooms_field_by_field", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chats/rooms", r.URL.Path)
			w.Write([]byte(`{"rooms":[{
				"id":"r1",
				"lastMessage":"hi",
				"lastSentUserId":"u1",
				"createdAt":"t1",
				"updatedAt":"t1",
				"unreadMessageCount":2,
				"otherUser":{"id":"u2","name":"Bob"}
			}]}`))
		})

		rooms, failure := NewChatRepository(client).GetAllRooms(context.Background())

		require.Nil(t, failure)
		require.Len(t, rooms, 1)
		assert.Equal(t, domain.Room{
			ID:                 "r1",
			LastMessage:        "hi",
			LastSentUserID:     "u1",
			CreatedAt:          "t1",
			UpdatedAt:          "t1",
			UnreadMessageCount: 2,
			OtherUser:          domain.RoomUser{ID: "u2", Name: "Bob"},
		}, rooms[0])
	})

	t.Run("empty_body_on_success_is_a_failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		rooms, failure := NewChatRepository(client).GetAllRooms(context.Background())

		require.NotNil(t, failure)
		assert.NotEmpty(t, failure.Message)
		assert.Nil(t, rooms)
	})

	t.Run("rejected_request_maps_server_message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid or expired session"}`))
		})

		_, failure := NewChatRepository(client).GetAllRooms(context.Background())

		require.NotNil(t, failure)
		assert.Equal(t, "invalid or expired session", failure.Message)
		assert.Equal(t, http.StatusUnauthorized, failure.Code)
	})
}

func TestChatRepository_SendMessage(t *testing.T) {
	t.Run("delivers_payload_and_maps_acknowledgement", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chats/rooms/r1/messages", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"m1","message":"hello","createdAt":"t1","updatedAt":"t1"}`))
		})

		sent, failure := NewChatRepository(client).SendMessage(
			context.Background(), "r1", "m1", "hello", "u2", 3)

		require.Nil(t, failure)
		assert.Equal(t, domain.SentMessage{
			ID: "m1", Message: "hello", CreatedAt: "t1", UpdatedAt: "t1",
		}, sent)
	})

	t.Run("network_failure_yields_generic_message", func(t *testing.T) {
		sent, failure := NewChatRepository(unreachableClient()).SendMessage(
			context.Background(), "r1", "m1", "hello", "u2", 3)

		require.NotNil(t, failure)
		assert.Equal(t, domain.MsgUnexpectedError, failure.Message)
		assert.Zero(t, sent)
	})
}

func TestChatRepository_GetAllMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chats/rooms/r1/messages", r.URL.Path)
		w.Write([]byte(`{
			"otherUser":{"id":"u2","lastReadMessageId":"m1"},
			"messages":[
				{"id":"m1","message":"hi","isDeleted":false,"roomId":"r1","userId":"u1","createdAt":"t1","updatedAt":"t1"},
				{"id":"m2","message":"yo","isDeleted":true,"roomId":"r1","userId":"u2","createdAt":"t2","updatedAt":"t2"}
			]
		}`))
	})

	conversation, failure := NewChatRepository(client).GetAllMessages(context.Background(), "r1")

	require.Nil(t, failure)
	assert.Equal(t, "u2", conversation.OtherUser.ID)
	assert.Equal(t, "m1", conversation.OtherUser.LastReadMessageID)
	require.Len(t, conversation.Messages, 2)
	assert.True(t, conversation.Messages[1].IsDeleted)
}

func TestChatRepository_UpdateReadCheckpoint(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		w.Write([]byte(`{"id":"cp1","roomId":"r1","userId":"u1","lastReadMessageId":"m2"}`))
	})

	cp, failure := NewChatRepository(client).UpdateReadCheckpoint(context.Background(), "r1", "m2")

	require.Nil(t, failure)
	assert.Equal(t, domain.ReadCheckpoint{
		ID: "cp1", RoomID: "r1", UserID: "u1", LastReadMessageID: "m2",
	}, cp)
}

func TestChatRepository_CreateRoom(t *testing.T) {
	t.Run("returns_new_room_id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"r9"}`))
		})

		roomID, failure := NewChatRepository(client).CreateRoom(context.Background(), []string{"u1", "u2"})

		require.Nil(t, failure)
		assert.Equal(t, "r9", roomID)
	})

	t.Run("null_body_on_success_is_the_dedicated_failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		_, failure := NewChatRepository(client).CreateRoom(context.Background(), []string{"u1", "u2"})

		require.NotNil(t, failure)
		assert.Equal(t, domain.MsgNullBody, failure.Message)
	})
}

func TestChatRepository_CheckRoom(t *testing.T) {
	t.Run("existing_room_id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1,u2", r.URL.Query().Get("members"))
			w.Write([]byte(`{"roomId":"r1"}`))
		})

		roomID, failure := NewChatRepository(client).CheckRoom(context.Background(), []string{"u1", "u2"})

		require.Nil(t, failure)
		require.NotNil(t, roomID)
		assert.Equal(t, "r1", *roomID)
	})

	t.Run("null_room_id_is_a_valid_success", func(t *testing.T) {
		// A null roomId means "no existing room", not a failure. This is
		// deliberately different from the null-body handling above.
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"roomId":null}`))
		})

		roomID, failure := NewChatRepository(client).CheckRoom(context.Background(), []string{"u1", "u2"})

		require.Nil(t, failure)
		assert.Nil(t, roomID)
	})
}
