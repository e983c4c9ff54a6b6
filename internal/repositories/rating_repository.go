package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"swap-service/internal/models"
)

// RatingRepository stores user-to-user ratings.
type RatingRepository interface {
	Upsert(ctx context.Context, ratedUserID int, ratingUserID int, rating int) (models.Rating, error)
	Summary(ctx context.Context, ratedUserID int) (models.RatingSummary, error)
	HasMatchBetween(ctx context.Context, userID int, otherID int) (bool, error)
}

// RatingRepo is a sqlx implementation of RatingRepository.
type RatingRepo struct {
	db *sqlx.DB
}

// NewRatingRepo constructs a RatingRepo.
func NewRatingRepo(db *sqlx.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Upsert creates the rating or overwrites a previous one from the same
// rater.
func (r *RatingRepo) Upsert(ctx context.Context, ratedUserID int, ratingUserID int, rating int) (models.Rating, error) {
	var stored models.Rating
	err := r.db.GetContext(ctx, &stored, `INSERT INTO ratings (rated_user_id, rating_user_id, rating) VALUES ($1, $2, $3)
        ON CONFLICT (rated_user_id, rating_user_id) DO UPDATE SET rating = EXCLUDED.rating
        RETURNING id, rated_user_id, rating_user_id, rating`, ratedUserID, ratingUserID, rating)
	return stored, err
}

// Summary returns the average rating and the number of ratings received.
func (r *RatingRepo) Summary(ctx context.Context, ratedUserID int) (models.RatingSummary, error) {
	var row struct {
		Average float64 `db:"average"`
		Count   int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count FROM ratings WHERE rated_user_id=$1`, ratedUserID)
	return models.RatingSummary{Average: row.Average, Count: row.Count}, err
}

// HasMatchBetween reports whether any match exists between two users'
// likes, in either ordering. Rating is only open to matched users.
func (r *RatingRepo) HasMatchBetween(ctx context.Context, userID int, otherID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(
        SELECT 1 FROM matches m
        JOIN likes l1 ON l1.id = m.like_one_id
        JOIN likes l2 ON l2.id = m.like_two_id
        WHERE (l1.liker_id=$1 AND l2.liker_id=$2) OR (l1.liker_id=$2 AND l2.liker_id=$1))`, userID, otherID)
	return exists, err
}
