package models

import "time"

// User is a marketplace participant. Authentication lives in a separate
// service; this row only carries profile data referenced by items, likes
// and chats.
type User struct {
	ID        int       `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	City      string    `db:"city" json:"city,omitempty"`
	Latitude  *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64  `db:"longitude" json:"longitude,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
