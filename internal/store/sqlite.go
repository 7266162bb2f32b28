package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mbeaulieu/courses/internal/model"
)

// SQLite is the store-backed Gateway implementation.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// isSchemaAbsent recognizes the driver's "relation not found" signal.
// modernc.org/sqlite reports missing tables as "no such table: <name>".
func isSchemaAbsent(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

// Probe checks that the expected schema exists. A missing table maps
// to ErrSchemaAbsent; anything else is a transient QueryError.
func (s *SQLite) Probe(ctx context.Context) error {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if isSchemaAbsent(err) {
		return ErrSchemaAbsent
	}
	if err != nil {
		return queryErr("probe schema", err)
	}
	return nil
}

// --- User methods ---

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var isAdmin int
	err := scanner.Scan(&u.ID, &u.Username, &u.Password, &isAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.IsAdmin = isAdmin != 0
	return &u, nil
}

const userCols = `id, username, password, is_admin, created_at, updated_at`

func (s *SQLite) Users(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userCols+` FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, queryErr("list users", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, queryErr("scan user", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *SQLite) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE LOWER(username) = LOWER(?)`, username)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryErr("get user by username", err)
	}
	return u, nil
}

func (s *SQLite) UpdatePassword(ctx context.Context, userID, password string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = ?, updated_at = ? WHERE id = ?`,
		password, time.Now().UTC(), userID)
	if err != nil {
		return queryErr("update password", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
