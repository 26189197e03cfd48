package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

var ErrUserExists = errors.New("User already exists")
var ErrUserNotFound = errors.New("User doesn't exist")
var ErrInvalidCredentials = errors.New("Invalid Credentials")

// User models an authenticated actor: an Asha field worker or the reconciling
// admin. Records are immutable after registration; there is no update or
// delete path.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
