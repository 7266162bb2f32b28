package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

func scanHistory(scanner interface{ Scan(...any) error }) (*model.ProductHistory, error) {
	var h model.ProductHistory
	var price sql.NullFloat64

	err := scanner.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Category, &h.Description, &price,
		&h.Weight, &h.Store, &h.Remarks, &h.UsageCount, &h.LastUsed,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		h.Price = &price.Float64
	}
	return &h, nil
}

const historyCols = `id, user_id, name, category, description, price, weight, store, remarks, usage_count, last_used, created_at, updated_at`

func (s *SQLite) History(ctx context.Context, userID string) ([]model.ProductHistory, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+historyCols+` FROM product_history WHERE user_id = ? ORDER BY usage_count DESC, last_used DESC`,
		userID)
	if err != nil {
		return nil, queryErr("list history", err)
	}
	defer rows.Close()

	var history []model.ProductHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, queryErr("scan history", err)
		}
		history = append(history, *h)
	}
	return history, rows.Err()
}

func (s *SQLite) HistoryEntry(ctx context.Context, userID, name, category string) (*model.ProductHistory, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+historyCols+` FROM product_history WHERE user_id = ? AND name = ? AND category = ?`,
		userID, name, category)
	h, err := scanHistory(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryErr("get history entry", err)
	}
	return h, nil
}

func (s *SQLite) InsertHistory(ctx context.Context, h *model.ProductHistory) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO product_history (id, user_id, name, category, description, price, weight, store, remarks, usage_count, last_used, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.UserID, h.Name, h.Category, h.Description, nullPrice(h.Price),
		h.Weight, h.Store, h.Remarks, h.UsageCount, h.LastUsed, now, now,
	)
	if err != nil {
		return queryErr("insert history", err)
	}
	return nil
}

func (s *SQLite) UpdateHistory(ctx context.Context, h *model.ProductHistory) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE product_history SET description = ?, price = ?, weight = ?, store = ?, remarks = ?, usage_count = ?, last_used = ?, updated_at = ? WHERE id = ?`,
		h.Description, nullPrice(h.Price), h.Weight, h.Store, h.Remarks,
		h.UsageCount, h.LastUsed, time.Now().UTC(), h.ID,
	)
	if err != nil {
		return queryErr("update history", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
