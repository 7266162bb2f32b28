package model

import "time"

// ShoppingItem belongs to exactly one list, identified by UserID.
// UserID is the owner of the list the item sits on, which is not
// necessarily the user who created it.
type ShoppingItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Weight      string    `json:"weight,omitempty"`
	Store       string    `json:"store,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
