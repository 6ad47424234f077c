package dto

import (
	"time"
)

// UserOutput is the sanitized account projection returned by listing and
// registration responses. It never carries the password hash or any
// outstanding reset code.
type UserOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	LoginAttempts int       `json:"loginAttempts"`
	IsLocked      bool      `json:"isLocked"`
	CreatedAt     time.Time `json:"createdAt"`
}
