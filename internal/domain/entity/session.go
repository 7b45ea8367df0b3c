package entity

import "time"

// Session es una sesión iniciada por login. El JWT referencia su ID.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired informa si la sesión venció en el instante now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
