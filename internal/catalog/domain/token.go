package domain

import "time"

// RevokedToken is a tombstone for a session token that was logged out before
// its natural expiry. The record is keyed on the raw token string and becomes
// invisible once the revocation window has elapsed since CreatedAt; the
// token's own expiry is the primary defense, the window is a resource bound.
type RevokedToken struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
