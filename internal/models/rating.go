package models

// Rating is a 1..5 score one user gives another, unique per
// (rated, rater) pair and overwritten on re-rate.
type Rating struct {
	ID           int `db:"id" json:"id"`
	RatedUserID  int `db:"rated_user_id" json:"rated_user_id"`
	RatingUserID int `db:"rating_user_id" json:"rating_user_id"`
	Rating       int `db:"rating" json:"rating"`
}

// RatingSummary aggregates the ratings a user has received.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
