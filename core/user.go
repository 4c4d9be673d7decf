package core

import "time"

// User represents a registered identity
type User struct {
	ID           string    // Unique identifier for the user
	Username     string    // Unique login name
	PasswordHash string    // bcrypt hash of the password, never the plaintext
	CreatedAt    time.Time // When the account was created
}

// PublicUser is the non-secret view of a User, safe to return to callers
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the password hash from a User
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
