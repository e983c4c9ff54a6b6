package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"swap-service/internal/models"
)

// LikeRepository serves the liker-facing read paths. Like creation goes
// through the match engine so it stays in one transaction with match
// evaluation.
type LikeRepository interface {
	ListForLiker(ctx context.Context, likerID int) ([]models.LikedItem, error)
	CountsByItemForOwner(ctx context.Context, ownerID int) ([]models.ItemLikeCount, error)
}

// LikeRepo is a sqlx implementation of LikeRepository.
type LikeRepo struct {
	db *sqlx.DB
}

// NewLikeRepo constructs a LikeRepo.
func NewLikeRepo(db *sqlx.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// ListForLiker returns the user's likes joined with their items, most
// recent first.
func (r *LikeRepo) ListForLiker(ctx context.Context, likerID int) ([]models.LikedItem, error) {
	query := `SELECT l.id AS like_id, l.liked_on,
            i.id AS item_id, i.name AS item_name, i.status AS item_status, i.owner_id
        FROM likes l
        JOIN items i ON i.id = l.item_id
        WHERE l.liker_id=$1
        ORDER BY l.liked_on DESC, l.id DESC`
	var likes []models.LikedItem
	err := r.db.SelectContext(ctx, &likes, query, likerID)
	return likes, err
}

// CountsByItemForOwner reports like counts for each of the owner's items.
func (r *LikeRepo) CountsByItemForOwner(ctx context.Context, ownerID int) ([]models.ItemLikeCount, error) {
	query := `SELECT i.id AS item_id, i.name AS item_name, COUNT(l.id) AS likes
        FROM items i
        LEFT JOIN likes l ON l.item_id = i.id
        WHERE i.owner_id=$1
        GROUP BY i.id, i.name
        ORDER BY i.id ASC`
	var counts []models.ItemLikeCount
	err := r.db.SelectContext(ctx, &counts, query, ownerID)
	return counts, err
}
