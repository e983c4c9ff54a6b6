package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"swap-service/internal/models"
)

var ErrChatNotFound = errors.New("chat not found")

// ChatRepository abstracts chat persistence for read paths. Chat creation
// belongs to the match engine, which owns the transactional get-or-create.
type ChatRepository interface {
	GetChat(ctx context.Context, chatID int) (models.Chat, error)
	IsParticipant(ctx context.Context, chatID int, userID int) (bool, error)
	ListChats(ctx context.Context, userID int) ([]models.ChatSummary, error)
}

// ChatRepo is a sqlx implementation of ChatRepository.
type ChatRepo struct {
	db *sqlx.DB
}

// NewChatRepo constructs a ChatRepo.
func NewChatRepo(db *sqlx.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

// GetChat fetches a chat by id.
func (r *ChatRepo) GetChat(ctx context.Context, chatID int) (models.Chat, error) {
	var chat models.Chat
	err := r.db.GetContext(ctx, &chat, `SELECT id, participant_one, participant_two, created_at FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Chat{}, ErrChatNotFound
	}
	return chat, err
}

// IsParticipant checks whether a user belongs to the chat.
func (r *ChatRepo) IsParticipant(ctx context.Context, chatID int, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM chats WHERE id=$1 AND (participant_one=$2 OR participant_two=$2))`, chatID, userID)
	return exists, err
}

// ListChats returns the chats the user participates in, newest first.
func (r *ChatRepo) ListChats(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	query := `SELECT id, participant_one, participant_two, created_at FROM chats
        WHERE participant_one=$1 OR participant_two=$1
        ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ChatSummary
	for rows.Next() {
		var chat models.Chat
		if err := rows.StructScan(&chat); err != nil {
			return nil, err
		}
		otherID := chat.ParticipantOne
		if otherID == userID {
			otherID = chat.ParticipantTwo
		}
		result = append(result, models.ChatSummary{ChatID: chat.ID, OtherUserID: otherID, Created: chat.CreatedAt})
	}
	return result, rows.Err()
}
