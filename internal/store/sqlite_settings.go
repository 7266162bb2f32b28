package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

func (s *SQLite) Settings(ctx context.Context, userID string) (*model.UserSettings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, group_by_category, created_at, updated_at FROM user_settings WHERE user_id = ?`,
		userID)

	var us model.UserSettings
	var grouped int
	err := row.Scan(&us.ID, &us.UserID, &grouped, &us.CreatedAt, &us.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryErr("get settings", err)
	}
	us.GroupByCategory = grouped != 0
	return &us, nil
}

func (s *SQLite) UpsertSettings(ctx context.Context, userID string, groupByCategory bool) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (id, user_id, group_by_category, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET group_by_category = excluded.group_by_category, updated_at = excluded.updated_at`,
		uuid.NewString(), userID, boolToInt(groupByCategory), now, now,
	)
	if err != nil {
		return queryErr("upsert settings", err)
	}
	return nil
}
