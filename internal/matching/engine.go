package matching

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/models"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrOwnItemLike    = errors.New("cannot like your own item")
	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("user is not a chat participant")
)

// LikeOutcome reports what a like operation did: the like row, whether it
// already existed, any matches the evaluation created, and the chat for
// the pair when reciprocity exists.
type LikeOutcome struct {
	Like         models.Like
	AlreadyLiked bool
	NewMatches   []models.Match
	Chat         *models.Chat
}

// Matcher is the engine surface the handlers depend on.
type Matcher interface {
	LikeItem(ctx context.Context, itemID int, likerID int) (LikeOutcome, error)
	ListMatches(ctx context.Context, userID int) ([]models.MatchGroup, error)
	DeleteChatAndRelatedData(ctx context.Context, chatID int, userID int) error
}

// Engine owns the like/match/chat state transitions. Every mutating
// sequence runs in a single transaction; duplicate creation races are
// absorbed by the store's uniqueness constraints, so a concurrent second
// attempt resolves to "get" instead of surfacing a conflict.
type Engine struct {
	db *sqlx.DB
}

// NewEngine constructs an Engine.
func NewEngine(db *sqlx.DB) *Engine {
	return &Engine{db: db}
}

// LikeItem gets or creates the (item, liker) like and, when the like is
// new, evaluates reciprocity in the same transaction: each reciprocal like
// without a match gets one, and the user pair gets its chat ensured.
func (e *Engine) LikeItem(ctx context.Context, itemID int, likerID int) (LikeOutcome, error) {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return LikeOutcome{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var item models.Item
	err = tx.GetContext(ctx, &item, `SELECT id, name, description, category_id, owner_id, status, created_at FROM items WHERE id=$1`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return LikeOutcome{}, ErrItemNotFound
	}
	if err != nil {
		return LikeOutcome{}, err
	}
	if item.OwnerID == likerID {
		return LikeOutcome{}, ErrOwnItemLike
	}

	var like models.Like
	err = tx.GetContext(ctx, &like, `INSERT INTO likes (item_id, liker_id) VALUES ($1, $2)
        ON CONFLICT (item_id, liker_id) DO NOTHING
        RETURNING id, item_id, liker_id, liked_on`, itemID, likerID)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost to an earlier like (or a concurrent one): resolve to "get".
		if err := tx.GetContext(ctx, &like, `SELECT id, item_id, liker_id, liked_on FROM likes WHERE item_id=$1 AND liker_id=$2`, itemID, likerID); err != nil {
			return LikeOutcome{}, err
		}
		if err := tx.Commit(); err != nil {
			return LikeOutcome{}, err
		}
		return LikeOutcome{Like: like, AlreadyLiked: true}, nil
	}
	if err != nil {
		return LikeOutcome{}, err
	}

	matches, chat, err := e.evaluateLike(ctx, tx, like, item.OwnerID)
	if err != nil {
		return LikeOutcome{}, err
	}
	if err := tx.Commit(); err != nil {
		return LikeOutcome{}, err
	}

	if len(matches) > 0 {
		logger.Log.Info("reciprocal likes matched",
			zap.Int("like_id", like.ID),
			zap.Int("matches", len(matches)),
			zap.Int("chat_id", chat.ID))
	}
	return LikeOutcome{Like: like, NewMatches: matches, Chat: chat}, nil
}

// evaluateLike runs the reciprocity scan for an existing like: likes by the
// item's owner on items owned by the liker are candidates, each candidate
// pair gets a match unless one exists in either ordering, and the user
// pair's chat is ensured. The evaluation is deterministic and idempotent,
// so a repair job can safely re-run it for any like.
func (e *Engine) evaluateLike(ctx context.Context, tx *sqlx.Tx, like models.Like, ownerID int) ([]models.Match, *models.Chat, error) {
	var candidates []models.Like
	err := tx.SelectContext(ctx, &candidates, `SELECT l.id, l.item_id, l.liker_id, l.liked_on
        FROM likes l
        JOIN items i ON i.id = l.item_id
        WHERE i.owner_id=$1 AND l.liker_id=$2
        ORDER BY l.id ASC`, like.LikerID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	var created []models.Match
	for _, candidate := range candidates {
		var match models.Match
		err := tx.GetContext(ctx, &match, `INSERT INTO matches (like_one_id, like_two_id)
            SELECT $1, $2 WHERE NOT EXISTS (
                SELECT 1 FROM matches
                WHERE (like_one_id=$1 AND like_two_id=$2) OR (like_one_id=$2 AND like_two_id=$1))
            RETURNING id, like_one_id, like_two_id, matched_on`, like.ID, candidate.ID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		created = append(created, match)
	}

	chat, err := ensureChat(ctx, tx, like.LikerID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return created, &chat, nil
}

// ensureChat gets or creates the chat for the canonical user pair. The
// partial unique insert makes concurrent duplicates resolve to "get".
func ensureChat(ctx context.Context, q sqlx.ExtContext, userA int, userB int) (models.Chat, error) {
	one, two := CanonicalPair(userA, userB)

	var chat models.Chat
	err := sqlx.GetContext(ctx, q, &chat, `INSERT INTO chats (participant_one, participant_two) VALUES ($1, $2)
        ON CONFLICT (participant_one, participant_two) DO NOTHING
        RETURNING id, participant_one, participant_two, created_at`, one, two)
	if errors.Is(err, sql.ErrNoRows) {
		err = sqlx.GetContext(ctx, q, &chat, `SELECT id, participant_one, participant_two, created_at FROM chats WHERE participant_one=$1 AND participant_two=$2`, one, two)
	}
	return chat, err
}

// ListMatches returns the caller's matches grouped by the other
// participant, ordered by that user's id. Listing ensures a chat exists
// for every matched pair; the chat creation side effect is idempotent.
func (e *Engine) ListMatches(ctx context.Context, userID int) ([]models.MatchGroup, error) {
	var rows []matchRow
	err := e.db.SelectContext(ctx, &rows, `SELECT m.id AS match_id,
            l1.liker_id AS liker_one, l2.liker_id AS liker_two,
            i1.id AS item_one_id, i1.name AS item_one_name, i1.status AS item_one_status, i1.owner_id AS item_one_owner,
            i2.id AS item_two_id, i2.name AS item_two_name, i2.status AS item_two_status, i2.owner_id AS item_two_owner
        FROM matches m
        JOIN likes l1 ON l1.id = m.like_one_id
        JOIN likes l2 ON l2.id = m.like_two_id
        JOIN items i1 ON i1.id = l1.item_id
        JOIN items i2 ON i2.id = l2.item_id
        WHERE l1.liker_id=$1 OR l2.liker_id=$1
        ORDER BY m.id ASC`, userID)
	if err != nil {
		return nil, err
	}

	grouped := groupRows(userID, rows)
	if len(grouped) == 0 {
		return []models.MatchGroup{}, nil
	}

	otherIDs := make([]int, 0, len(grouped))
	for _, group := range grouped {
		otherIDs = append(otherIDs, group.otherUserID)
	}
	var users []models.User
	if err := e.db.SelectContext(ctx, &users, `SELECT id, username, city, latitude, longitude, created_at FROM users WHERE id = ANY($1)`, pq.Array(otherIDs)); err != nil {
		return nil, err
	}
	userByID := make(map[int]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	result := make([]models.MatchGroup, 0, len(grouped))
	for _, group := range grouped {
		chat, err := ensureChat(ctx, e.db, userID, group.otherUserID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.MatchGroup{
			OtherUser:     userByID[group.otherUserID],
			ItemsFromUser: group.itemsFromUser,
			ItemsFromThem: group.itemsFromThem,
			Chat:          chat,
		})
	}
	return result, nil
}

// DeleteChatAndRelatedData tears down a chat on behalf of a participant:
// messages, the matches between the two participants, the likes those
// matches were built from, and finally the chat row, all in one
// transaction. A later like between the pair starts a fresh cycle.
func (e *Engine) DeleteChatAndRelatedData(ctx context.Context, chatID int, userID int) error {
	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var chat models.Chat
	err = tx.GetContext(ctx, &chat, `SELECT id, participant_one, participant_two, created_at FROM chats WHERE id=$1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrChatNotFound
	}
	if err != nil {
		return err
	}
	if chat.ParticipantOne != userID && chat.ParticipantTwo != userID {
		return ErrNotParticipant
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE chat_id=$1`, chatID); err != nil {
		return err
	}

	var likeIDs []int
	err = tx.SelectContext(ctx, &likeIDs, `SELECT DISTINCT like_id FROM (
            SELECT m.like_one_id AS like_id FROM matches m
                JOIN likes l1 ON l1.id = m.like_one_id
                JOIN likes l2 ON l2.id = m.like_two_id
                WHERE (l1.liker_id=$1 AND l2.liker_id=$2) OR (l1.liker_id=$2 AND l2.liker_id=$1)
            UNION
            SELECT m.like_two_id FROM matches m
                JOIN likes l1 ON l1.id = m.like_one_id
                JOIN likes l2 ON l2.id = m.like_two_id
                WHERE (l1.liker_id=$1 AND l2.liker_id=$2) OR (l1.liker_id=$2 AND l2.liker_id=$1)
        ) pair_likes`, chat.ParticipantOne, chat.ParticipantTwo)
	if err != nil {
		return err
	}

	if len(likeIDs) > 0 {
		// Matches cascade with their likes.
		if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE id = ANY($1)`, pq.Array(likeIDs)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id=$1`, chatID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Log.Info("chat and related data deleted",
		zap.Int("chat_id", chatID),
		zap.Int("requested_by", userID),
		zap.Int("likes_removed", len(likeIDs)))
	return nil
}
