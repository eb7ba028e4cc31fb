package domain

import "time"

// Role differentiates readers from publishers.
type Role string

const (
	RoleReader    Role = "READER"
	RolePublisher Role = "PUBLISHER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleReader || r == RolePublisher
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
