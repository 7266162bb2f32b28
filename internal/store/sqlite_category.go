package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

func (s *SQLite) Categories(ctx context.Context) ([]model.CustomCategory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM custom_categories ORDER BY name ASC`)
	if err != nil {
		return nil, queryErr("list categories", err)
	}
	defer rows.Close()

	var categories []model.CustomCategory
	for rows.Next() {
		var c model.CustomCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, queryErr("scan category", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLite) InsertCategory(ctx context.Context, name string) (*model.CustomCategory, error) {
	c := model.CustomCategory{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_categories (id, name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicate
		}
		return nil, queryErr("insert category", err)
	}
	return &c, nil
}
