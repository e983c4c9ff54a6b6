package models

import "time"

// Chat is the single conversation between an unordered pair of users.
// ParticipantOne always holds the lower user id.
type Chat struct {
	ID             int       `db:"id" json:"id"`
	ParticipantOne int       `db:"participant_one" json:"participant_one"`
	ParticipantTwo int       `db:"participant_two" json:"participant_two"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ChatSummary provides an API-friendly view of a chat for one participant.
type ChatSummary struct {
	ChatID      int       `db:"id" json:"chat_id"`
	OtherUserID int       `json:"other_user_id"`
	Created     time.Time `db:"created_at" json:"created_at"`
}

// ChatEvent is broadcast through websockets to chat participants.
type ChatEvent struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	ChatID  int      `json:"chat_id,omitempty"`
}
