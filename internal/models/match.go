package models

import "time"

// Match pairs two reciprocal likes: like_one's liker owns like_two's item
// and vice versa. Unique per unordered like pair.
type Match struct {
	ID        int       `db:"id" json:"id"`
	LikeOneID int       `db:"like_one_id" json:"like_one_id"`
	LikeTwoID int       `db:"like_two_id" json:"like_two_id"`
	MatchedOn time.Time `db:"matched_on" json:"matched_on"`
}

// MatchGroup is the per-other-user view of the caller's matches:
// which of their items the caller liked, which of the caller's items they
// liked, and the chat for the pair.
type MatchGroup struct {
	OtherUser     User   `json:"other_user"`
	ItemsFromUser []Item `json:"items_from_user"`
	ItemsFromThem []Item `json:"items_from_them"`
	Chat          Chat   `json:"chat"`
}
