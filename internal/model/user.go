package model

import "time"

// User represents an authentication user (separate from officers).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// RoleAdmin is the only role the server currently assigns.
const RoleAdmin = "admin"
