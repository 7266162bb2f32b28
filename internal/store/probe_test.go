package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mbeaulieu/courses/internal/database"
)

func TestProbeSchemaAbsent(t *testing.T) {
	db, err := database.OpenRaw(":memory:")
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewSQLite(db)
	if err := s.Probe(context.Background()); !errors.Is(err, ErrSchemaAbsent) {
		t.Errorf("probe err = %v, want ErrSchemaAbsent", err)
	}
}

func TestProbeEmptyUsersTable(t *testing.T) {
	db, err := database.OpenRaw(":memory:")
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE users (id TEXT PRIMARY KEY)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	// An empty table is still a present schema.
	s := NewSQLite(db)
	if err := s.Probe(context.Background()); err != nil {
		t.Errorf("probe err = %v, want nil", err)
	}
}

func TestQueryErrorWrapping(t *testing.T) {
	inner := errors.New("disk I/O error")
	err := queryErr("list items", inner)

	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("expected *QueryError, got %T", err)
	}
	if qe.Op != "list items" {
		t.Errorf("op = %q, want %q", qe.Op, "list items")
	}
	if !errors.Is(err, inner) {
		t.Error("QueryError should unwrap to the driver error")
	}
	if errors.Is(err, ErrSchemaAbsent) {
		t.Error("a transient query error must never read as schema-absent")
	}
}
