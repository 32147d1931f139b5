package model

import "time"

// Role distinguishes travelers (who carry packages) from shippers (who post
// delivery requests). Resolved once at user lookup, never compared as a raw
// query result.
type Role string

const (
	RoleTraveler Role = "traveler"
	RoleShipper  Role = "shipper"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTraveler || r == RoleShipper
}

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         Role      `json:"role"`
	Email        *string   `json:"email,omitempty"` // Pointer for optional field
	CreatedAt    time.Time `json:"created_at"`
}
