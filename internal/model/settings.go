package model

import "time"

// UserSettings holds per-user display preferences. At most one row
// exists per user; writes go through an upsert.
type UserSettings struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	GroupByCategory bool      `json:"group_by_category"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
