package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbeaulieu/courses/internal/model"
)

// Mode says which gateway implementation is active. It is decided once
// at startup and only re-evaluated on an explicit retry.
type Mode string

const (
	// ModePersistent means reads and writes go to the SQLite store.
	ModePersistent Mode = "persistent"
	// ModeEphemeral means the schema probe failed and all data lives
	// in memory for the lifetime of the process.
	ModeEphemeral Mode = "ephemeral"
)

var (
	// ErrSchemaAbsent is returned by Probe when the backing store is
	// reachable but the expected tables do not exist. It is the only
	// error that triggers ephemeral mode.
	ErrSchemaAbsent = errors.New("store: schema absent")

	// ErrNotFound is returned by single-row lookups that matched
	// nothing. History upserts treat it as "create new"; targeted
	// updates and deletes treat it as a no-op.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// rule, such as a custom category name that already exists.
	ErrDuplicate = errors.New("store: duplicate")
)

// QueryError wraps a transient store failure. It must never be
// conflated with ErrSchemaAbsent: the affected load falls back to an
// empty view, the global mode does not change.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *QueryError) Unwrap() error { return e.Err }

func queryErr(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}

// Gateway abstracts the backing store. The SQLite implementation and
// the in-memory fallback are interchangeable; callers stay
// mode-agnostic.
type Gateway interface {
	// Probe performs a lightweight read and distinguishes a missing
	// schema (ErrSchemaAbsent) from transient failures (*QueryError).
	Probe(ctx context.Context) error

	Users(ctx context.Context) ([]model.User, error)
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error

	Items(ctx context.Context) ([]model.ShoppingItem, error)
	ItemByID(ctx context.Context, id string) (*model.ShoppingItem, error)
	InsertItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error)
	UpdateItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error)
	SetItemCompleted(ctx context.Context, id string, completed bool) (*model.ShoppingItem, error)
	DeleteItem(ctx context.Context, id string) error

	Categories(ctx context.Context) ([]model.CustomCategory, error)
	InsertCategory(ctx context.Context, name string) (*model.CustomCategory, error)

	Settings(ctx context.Context, userID string) (*model.UserSettings, error)
	UpsertSettings(ctx context.Context, userID string, groupByCategory bool) error

	History(ctx context.Context, userID string) ([]model.ProductHistory, error)
	HistoryEntry(ctx context.Context, userID, name, category string) (*model.ProductHistory, error)
	InsertHistory(ctx context.Context, h *model.ProductHistory) error
	UpdateHistory(ctx context.Context, h *model.ProductHistory) error
}
