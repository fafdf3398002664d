package types

import "time"

// AdminSession is issued after the shared-secret admin login and kept in an
// ephemeral TTL-bounded store.
type AdminSession struct {
	Token     string    `json:"-"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at time now.
func (s AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
