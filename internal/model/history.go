package model

import "time"

// ProductHistory is the per-(user, name, category) aggregate behind
// the add-item suggestion box. UsageCount only ever grows; the
// descriptive fields snapshot the most recent non-empty values seen.
type ProductHistory struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Weight      string    `json:"weight,omitempty"`
	Store       string    `json:"store,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
	UsageCount  int       `json:"usage_count"`
	LastUsed    time.Time `json:"last_used"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
