package model

import "time"

// User is a member of the fixed household roster. ID is a short
// human-chosen slug ("lulu"), not a surrogate key.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
