package domain

import "time"

// Session is a server-issued opaque bearer credential. Possession of
// the ID is authentication; UserID is a weak reference to the owner.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
