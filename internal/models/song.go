package models

import "time"

// Song is one record in a user's collection. UserID is the owner and is
// immutable after creation; every mutation is scoped to it.
type Song struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Songname string    `json:"songname"`
	Songtype string    `json:"songtype"`
	Language string    `json:"language"`
	Keyword  string    `json:"keyword"`
	AddedAt  time.Time `json:"added_at"`
}
