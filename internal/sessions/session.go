package sessions

import "time"

// Session is a server-held admin capability bound to an opaque id carried
// by the client cookie. Lifetime is fixed at creation; activity does not
// extend it.
type Session struct {
	ID        string    `bson:"_id" json:"id"`
	IsAdmin   bool      `bson:"isAdmin" json:"isAdmin"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// Expired reports whether the session has outlived its max age at t.
func (s *Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
