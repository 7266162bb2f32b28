package model

import "time"

// MutationType classifies list mutations for notifications and
// websocket broadcasts.
type MutationType string

const (
	MutationAdd    MutationType = "add"
	MutationEdit   MutationType = "edit"
	MutationDelete MutationType = "delete"
	MutationToggle MutationType = "toggle"
)

// Notification is session-scoped and never persisted. It records a
// mutation another user made to a shared list.
type Notification struct {
	ID         string       `json:"id"`
	Message    string       `json:"message"`
	Timestamp  time.Time    `json:"timestamp"`
	Type       MutationType `json:"type"`
	ItemName   string       `json:"item_name"`
	ModifiedBy string       `json:"modified_by"`
}
