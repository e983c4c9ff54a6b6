package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"swap-service/internal/models"
)

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, chatID int, senderID int, text string) (models.Message, error)
	ListByChat(ctx context.Context, chatID int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to a chat.
func (r *MessageRepo) CreateMessage(ctx context.Context, chatID int, senderID int, text string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (chat_id, sender_id, text) VALUES ($1, $2, $3) RETURNING id, chat_id, sender_id, text, sent_at`, chatID, senderID, text).
		Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Text, &msg.SentAt)
	return msg, err
}

// ListByChat returns the chat's messages in send order.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID int) ([]models.Message, error) {
	query := `SELECT id, chat_id, sender_id, text, sent_at
        FROM messages
        WHERE chat_id=$1
        ORDER BY sent_at ASC, id ASC`
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs, query, chatID)
	return msgs, err
}
