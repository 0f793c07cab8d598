package models

import "time"

// Subscriber represents a user receiving channel digests
type Subscriber struct {
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
