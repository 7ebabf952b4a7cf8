package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role values. The role is fixed at registration; only the seed admin
// carries RoleAdmin.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a registered account, persisted under the "users" key.
// Password holds a bcrypt digest; it is part of the stored record but must
// never be returned to clients (use ToResponse).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registeredAt"`

	// SessionVersion is rotated on every login so tokens issued for an
	// earlier session stop validating (single-session model).
	SessionVersion string `json:"sessionVersion,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		RegisteredAt: u.RegisteredAt,
	}
}
