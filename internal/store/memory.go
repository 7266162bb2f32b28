package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mbeaulieu/courses/internal/model"
)

// Memory is the ephemeral Gateway used when the schema probe reports
// the backing store absent. It is seeded with the fixed household
// roster and starts with no items, history, or custom categories.
// Everything here is discarded when the process exits.
type Memory struct {
	mu         sync.RWMutex
	users      []model.User
	items      []model.ShoppingItem // newest first
	categories []model.CustomCategory
	settings   map[string]model.UserSettings
	history    []model.ProductHistory
}

// SeedRoster returns the fixed three-user roster: two ordinary peers
// and one admin. Passwords are the ones the original deployment
// shipped with, stored in the clear (see DESIGN.md).
func SeedRoster() []model.User {
	now := time.Now().UTC()
	return []model.User{
		{ID: "lulu", Username: "Lulu", Password: "Misty123", IsAdmin: false, CreatedAt: now, UpdatedAt: now},
		{ID: "lolo", Username: "Lolo", Password: "Misty123", IsAdmin: false, CreatedAt: now, UpdatedAt: now},
		{ID: "admin", Username: "Admin", Password: "Misty123", IsAdmin: true, CreatedAt: now, UpdatedAt: now},
	}
}

func NewMemory() *Memory {
	return &Memory{
		users:    SeedRoster(),
		settings: make(map[string]model.UserSettings),
	}
}

// Probe always succeeds: the in-memory mirror is its own schema.
func (m *Memory) Probe(ctx context.Context) error { return nil }

// --- User methods ---

func (m *Memory) Users(ctx context.Context) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]model.User, len(m.users))
	copy(users, m.users)
	sort.SliceStable(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *Memory) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdatePassword(ctx context.Context, userID, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].Password = password
			m.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}

// --- Item methods ---

func (m *Memory) Items(ctx context.Context) ([]model.ShoppingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]model.ShoppingItem, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *Memory) ItemByID(ctx context.Context, id string) (*model.ShoppingItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	stored := *item
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	// Prepend keeps the newest-first ordering contract.
	m.items = append([]model.ShoppingItem{stored}, m.items...)
	return &stored, nil
}

func (m *Memory) UpdateItem(ctx context.Context, item *model.ShoppingItem) (*model.ShoppingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i].Name = item.Name
			m.items[i].Category = item.Category
			m.items[i].Description = item.Description
			m.items[i].Price = item.Price
			m.items[i].Weight = item.Weight
			m.items[i].Store = item.Store
			m.items[i].Remarks = item.Remarks
			m.items[i].UpdatedAt = time.Now().UTC()
			updated := m.items[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetItemCompleted(ctx context.Context, id string, completed bool) (*model.ShoppingItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Completed = completed
			m.items[i].UpdatedAt = time.Now().UTC()
			updated := m.items[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) DeleteItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- Category methods ---

func (m *Memory) Categories(ctx context.Context) ([]model.CustomCategory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]model.CustomCategory, len(m.categories))
	copy(categories, m.categories)
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *Memory) InsertCategory(ctx context.Context, name string) (*model.CustomCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Name == name {
			return nil, ErrDuplicate
		}
	}
	c := model.CustomCategory{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	m.categories = append(m.categories, c)
	return &c, nil
}

// --- Settings methods ---

func (m *Memory) Settings(ctx context.Context, userID string) (*model.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	us, ok := m.settings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &us, nil
}

func (m *Memory) UpsertSettings(ctx context.Context, userID string, groupByCategory bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	us, ok := m.settings[userID]
	if !ok {
		us = model.UserSettings{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}
	us.GroupByCategory = groupByCategory
	us.UpdatedAt = now
	m.settings[userID] = us
	return nil
}

// --- History methods ---

func (m *Memory) History(ctx context.Context, userID string) ([]model.ProductHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var history []model.ProductHistory
	for _, h := range m.history {
		if h.UserID == userID {
			history = append(history, h)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		if history[i].UsageCount != history[j].UsageCount {
			return history[i].UsageCount > history[j].UsageCount
		}
		return history[i].LastUsed.After(history[j].LastUsed)
	})
	return history, nil
}

func (m *Memory) HistoryEntry(ctx context.Context, userID, name, category string) (*model.ProductHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, h := range m.history {
		if h.UserID == userID && h.Name == name && h.Category == category {
			found := h
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertHistory(ctx context.Context, h *model.ProductHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	stored := *h
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.history = append(m.history, stored)
	return nil
}

func (m *Memory) UpdateHistory(ctx context.Context, h *model.ProductHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.history {
		if m.history[i].ID == h.ID {
			m.history[i].Description = h.Description
			m.history[i].Price = h.Price
			m.history[i].Weight = h.Weight
			m.history[i].Store = h.Store
			m.history[i].Remarks = h.Remarks
			m.history[i].UsageCount = h.UsageCount
			m.history[i].LastUsed = h.LastUsed
			m.history[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotFound
}
