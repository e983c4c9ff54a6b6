package models

import "time"

// Message is an immutable chat message, ordered by send time within its
// chat. It is removed only when the whole chat is torn down.
type Message struct {
	ID       int       `db:"id" json:"id"`
	ChatID   int       `db:"chat_id" json:"chat_id"`
	SenderID int       `db:"sender_id" json:"sender_id"`
	Text     string    `db:"text" json:"text"`
	SentAt   time.Time `db:"sent_at" json:"sent_at"`
}
