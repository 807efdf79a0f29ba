package domain

import "time"

type SessionID string

// Session grants host-page access to a non-loopback client.
// Lifecycle is independent from signaling connections.
type Session struct {
	ID        SessionID `json:"sessionId"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExpiredAt reports whether the session is past its maximum age at now.
func (s Session) ExpiredAt(now time.Time, maxAge time.Duration) bool {
	return now.Sub(s.CreatedAt) >= maxAge
}
