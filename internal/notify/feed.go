// Package notify implements the session-scoped feed of mutations
// other users made to shared lists.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

// MaxEntries caps the feed; the oldest entry is dropped first.
const MaxEntries = 10

// Event describes a single list mutation, fanned out to every other
// active session.
type Event struct {
	Type      model.MutationType
	ItemName  string
	ActorID   string
	ActorName string
	OwnerID   string // owner of the list that was mutated
	At        time.Time
}

// Message renders the user-facing notification text for the event.
func (ev Event) Message() string {
	var verb string
	switch ev.Type {
	case model.MutationAdd:
		verb = "a ajouté"
	case model.MutationEdit:
		verb = "a modifié"
	case model.MutationDelete:
		verb = "a supprimé"
	case model.MutationToggle:
		verb = "a coché/décoché"
	default:
		verb = "a modifié"
	}
	return fmt.Sprintf("%s %s \"%s\"", ev.ActorName, verb, ev.ItemName)
}

// Feed is the in-memory notification log attached to one session. It
// is never persisted and vanishes at logout.
type Feed struct {
	mu      sync.Mutex
	entries []model.Notification // newest first
}

func NewFeed() *Feed {
	return &Feed{}
}

// Record applies the delivery predicate and, when it passes, prepends
// a notification. viewerID is the user owning this feed and viewingID
// the list that user currently has open: you are never notified about
// your own edits, and the feed stays quiet while you are looking at
// your own list, regardless of whose list was actually touched.
func (f *Feed) Record(ev Event, viewerID, viewingID string) bool {
	if ev.ActorID == viewerID {
		return false
	}
	if viewingID == viewerID {
		return false
	}

	n := model.Notification{
		ID:         uuid.NewString(),
		Message:    ev.Message(),
		Timestamp:  ev.At,
		Type:       ev.Type,
		ItemName:   ev.ItemName,
		ModifiedBy: ev.ActorID,
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]model.Notification{n}, f.entries...)
	if len(f.entries) > MaxEntries {
		f.entries = f.entries[:MaxEntries]
	}
	return true
}

// List returns a copy of the feed, newest first.
func (f *Feed) List() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := make([]model.Notification, len(f.entries))
	copy(entries, f.entries)
	return entries
}

// Clear drops every entry.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
}

// Len returns the number of entries currently in the feed.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
