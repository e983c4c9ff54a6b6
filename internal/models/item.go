package models

import "time"

// Item availability statuses.
const (
	ItemStatusAvailable = "AVAILABLE"
	ItemStatusReserved  = "RESERVED"
)

// Item is a thing offered for swapping, owned by exactly one user.
type Item struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CategoryID  int       `db:"category_id" json:"category_id"`
	OwnerID     int       `db:"owner_id" json:"owner_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ItemImage references an already-stored image of an item. Upload storage
// is handled elsewhere; only the reference lives here.
type ItemImage struct {
	ID     int    `db:"id" json:"id"`
	ItemID int    `db:"item_id" json:"item_id"`
	URL    string `db:"url" json:"url"`
}

// Category is a fixed lookup value items belong to.
type Category struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
