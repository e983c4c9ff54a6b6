package models

import "time"

// Like records a user's interest in another user's item. Unique per
// (item, liker); never mutated once created.
type Like struct {
	ID      int       `db:"id" json:"id"`
	ItemID  int       `db:"item_id" json:"item_id"`
	LikerID int       `db:"liker_id" json:"liker_id"`
	LikedOn time.Time `db:"liked_on" json:"liked_on"`
}

// LikedItem is the liker-facing view of a like joined with its item.
type LikedItem struct {
	LikeID     int       `db:"like_id" json:"like_id"`
	LikedOn    time.Time `db:"liked_on" json:"liked_on"`
	ItemID     int       `db:"item_id" json:"item_id"`
	ItemName   string    `db:"item_name" json:"item_name"`
	ItemStatus string    `db:"item_status" json:"item_status"`
	OwnerID    int       `db:"owner_id" json:"owner_id"`
}

// ItemLikeCount reports how many likes one of the caller's items has
// received.
type ItemLikeCount struct {
	ItemID   int    `db:"item_id" json:"item_id"`
	ItemName string `db:"item_name" json:"item_name"`
	Likes    int    `db:"likes" json:"likes"`
}
