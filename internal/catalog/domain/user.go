package domain

import "time"

// Roles a user record can carry. Admin unlocks the admin panel route; both can
// write products.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id, PHC encoded
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
