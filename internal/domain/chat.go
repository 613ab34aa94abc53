package domain

// RoomUser identifies the counterpart in a two-party chat room. Only the
// fields a given endpoint reports are populated.
type RoomUser struct {
	ID                string `json:"id"`
	Name              string `json:"name,omitempty"`
	LastReadMessageID string `json:"last_read_message_id,omitempty"`
}

// Room is a chat room as shown in the room list. Timestamps are relayed as
// the backend sends them (RFC 3339 strings).
type Room struct {
	ID                 string   `json:"id"`
	LastMessage        string   `json:"last_message"`
	LastSentUserID     string   `json:"last_sent_user_id"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
	UnreadMessageCount int      `json:"unread_message_count"`
	OtherUser          RoomUser `json:"other_user"`
}

// Message is a single chat message inside a room.
type Message struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	IsDeleted bool   `json:"is_deleted"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RoomMessages is the full conversation state for one room: the messages plus
// the counterpart's read position.
type RoomMessages struct {
	OtherUser RoomUser  `json:"other_user"`
	Messages  []Message `json:"messages"`
}

// SentMessage is the acknowledgement for a delivered chat message.
type SentMessage struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ReadCheckpoint records how far a user has read in a room.
type ReadCheckpoint struct {
	ID                string `json:"id"`
	RoomID            string `json:"room_id"`
	UserID            string `json:"user_id"`
	LastReadMessageID string `json:"last_read_message_id"`
}
