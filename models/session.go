package models

import "time"

// Session struct for storing session data. Username is the email of the
// owning user; the session stays behind if that user is deleted, so lookups
// through it must tolerate a missing user.
type Session struct {
	ID        string    `json:"session_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
