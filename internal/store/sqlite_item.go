package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

func scanItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var price sql.NullFloat64
	var completed int

	err := scanner.Scan(
		&item.ID, &item.Name, &item.Category, &item.Description, &price,
		&item.Weight, &item.Store, &item.Remarks, &completed, &item.UserID,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Completed = completed != 0
	if price.Valid {
		item.Price = &price.Float64
	}
	return &item, nil
}

func nullPrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

const itemCols = `id, name, category, description, price, weight, store, remarks, completed, user_id, created_at, updated_at`

func (s *SQLite) Items(ctx context.Context) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM shopping_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, queryErr("list items", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, queryErr("scan item", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *SQLite) ItemByID(ctx context.Context, id string) (*model.ShoppingItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryErr("get item", err)
	}
	return item, nil
}

func (s *SQLite) InsertItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shopping_items (id, name, category, description, price, weight, store, remarks, completed, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, item.Name, item.Category, item.Description, nullPrice(item.Price),
		item.Weight, item.Store, item.Remarks, boolToInt(item.Completed), item.UserID, now, now,
	)
	if err != nil {
		return nil, queryErr("insert item", err)
	}
	return s.ItemByID(ctx, id)
}

func (s *SQLite) UpdateItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET name = ?, category = ?, description = ?, price = ?, weight = ?, store = ?, remarks = ?, updated_at = ? WHERE id = ?`,
		item.Name, item.Category, item.Description, nullPrice(item.Price),
		item.Weight, item.Store, item.Remarks, time.Now().UTC(), item.ID,
	)
	if err != nil {
		return nil, queryErr("update item", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.ItemByID(ctx, item.ID)
}

func (s *SQLite) SetItemCompleted(ctx context.Context, id string, completed bool) (*model.ShoppingItem, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET completed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(completed), time.Now().UTC(), id,
	)
	if err != nil {
		return nil, queryErr("set item completed", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.ItemByID(ctx, id)
}

func (s *SQLite) DeleteItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return queryErr("delete item", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
