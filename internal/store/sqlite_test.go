package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mbeaulieu/courses/internal/database"
	"github.com/mbeaulieu/courses/internal/model"
)

func setupTestGateway(t *testing.T) *SQLite {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLite(db)
}

func floatPtr(v float64) *float64 { return &v }

func TestProbeMigratedSchema(t *testing.T) {
	s := setupTestGateway(t)

	if err := s.Probe(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
}

func TestSeedRosterOrdering(t *testing.T) {
	s := setupTestGateway(t)

	users, err := s.Users(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(users))
	}

	expected := []string{"Admin", "Lolo", "Lulu"}
	for i, name := range expected {
		if users[i].Username != name {
			t.Errorf("users[%d].Username = %q, want %q", i, users[i].Username, name)
		}
	}
	if !users[0].IsAdmin {
		t.Error("Admin should have is_admin set")
	}
	if users[1].IsAdmin || users[2].IsAdmin {
		t.Error("peers should not be admins")
	}
}

func TestUserByUsernameCaseInsensitive(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	for _, input := range []string{"lulu", "LULU", "Lulu"} {
		u, err := s.UserByUsername(ctx, input)
		if err != nil {
			t.Fatalf("lookup %q: %v", input, err)
		}
		if u.ID != "lulu" {
			t.Errorf("lookup %q resolved to %q, want lulu", input, u.ID)
		}
	}
}

func TestUserByUsernameNotFound(t *testing.T) {
	s := setupTestGateway(t)

	_, err := s.UserByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	if err := s.UpdatePassword(ctx, "lulu", "nouveau"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	u, err := s.UserByUsername(ctx, "lulu")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.Password != "nouveau" {
		t.Errorf("password = %q, want %q", u.Password, "nouveau")
	}

	if err := s.UpdatePassword(ctx, "ghost", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user err = %v, want ErrNotFound", err)
	}
}

func TestItemCRUD(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	created, err := s.InsertItem(ctx, &model.ShoppingItem{
		Name:     "Lait",
		Category: "Produits Laitiers",
		Price:    floatPtr(1.5),
		UserID:   "lulu",
	})
	if err != nil {
		t.Fatalf("insert item: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.Completed {
		t.Error("new item should start incomplete")
	}

	got, err := s.ItemByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Name != "Lait" || got.UserID != "lulu" {
		t.Errorf("got %q owned by %q, want Lait owned by lulu", got.Name, got.UserID)
	}
	if got.Price == nil || *got.Price != 1.5 {
		t.Errorf("price = %v, want 1.5", got.Price)
	}

	got.Name = "Lait entier"
	got.Price = nil
	updated, err := s.UpdateItem(ctx, got)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Name != "Lait entier" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Lait entier")
	}
	if updated.Price != nil {
		t.Errorf("price should have been cleared, got %v", *updated.Price)
	}

	toggled, err := s.SetItemCompleted(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if !toggled.Completed {
		t.Error("expected completed = true")
	}

	if err := s.DeleteItem(ctx, created.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if _, err := s.ItemByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted item err = %v, want ErrNotFound", err)
	}
}

func TestItemsNewestFirst(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	for _, name := range []string{"Pommes", "Poires", "Pêches"} {
		if _, err := s.InsertItem(ctx, &model.ShoppingItem{Name: name, Category: "Fruits & Légumes", UserID: "lulu"}); err != nil {
			t.Fatalf("insert %s: %v", name, err)
		}
	}

	items, err := s.Items(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Name != "Pêches" || items[2].Name != "Pommes" {
		t.Errorf("order = [%s, %s, %s], want newest first", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	s := setupTestGateway(t)

	_, err := s.UpdateItem(context.Background(), &model.ShoppingItem{ID: "missing", Name: "x", Category: "Autres"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	_, err = s.SetItemCompleted(context.Background(), "missing", true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle err = %v, want ErrNotFound", err)
	}
}

func TestCategoryUniqueName(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	if _, err := s.InsertCategory(ctx, "Boissons"); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if _, err := s.InsertCategory(ctx, "Boissons"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate err = %v, want ErrDuplicate", err)
	}

	categories, err := s.Categories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(categories))
	}
}

func TestSettingsUpsert(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	if _, err := s.Settings(ctx, "lulu"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fresh settings err = %v, want ErrNotFound", err)
	}

	if err := s.UpsertSettings(ctx, "lulu", false); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := s.UpsertSettings(ctx, "lulu", true); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	us, err := s.Settings(ctx, "lulu")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if !us.GroupByCategory {
		t.Error("expected group_by_category = true after second upsert")
	}
}

func TestHistoryUpsertCycle(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	if err := s.InsertHistory(ctx, &model.ProductHistory{
		UserID: "lulu", Name: "Apples", Category: "Fruits & Légumes",
		Price: floatPtr(2.0), UsageCount: 1,
	}); err != nil {
		t.Fatalf("insert history: %v", err)
	}

	h, err := s.HistoryEntry(ctx, "lulu", "Apples", "Fruits & Légumes")
	if err != nil {
		t.Fatalf("get history entry: %v", err)
	}
	if h.UsageCount != 1 {
		t.Errorf("usage_count = %d, want 1", h.UsageCount)
	}

	h.UsageCount = 2
	h.Price = floatPtr(2.5)
	if err := s.UpdateHistory(ctx, h); err != nil {
		t.Fatalf("update history: %v", err)
	}

	h, err = s.HistoryEntry(ctx, "lulu", "Apples", "Fruits & Légumes")
	if err != nil {
		t.Fatalf("re-read history entry: %v", err)
	}
	if h.UsageCount != 2 {
		t.Errorf("usage_count = %d, want 2", h.UsageCount)
	}
	if h.Price == nil || *h.Price != 2.5 {
		t.Errorf("price = %v, want 2.5", h.Price)
	}

	if _, err := s.HistoryEntry(ctx, "lolo", "Apples", "Fruits & Légumes"); !errors.Is(err, ErrNotFound) {
		t.Errorf("other user's entry err = %v, want ErrNotFound", err)
	}
}

func TestHistoryOrdering(t *testing.T) {
	s := setupTestGateway(t)
	ctx := context.Background()

	seed := []model.ProductHistory{
		{UserID: "lulu", Name: "Mint", Category: "Autres", UsageCount: 1},
		{UserID: "lulu", Name: "Milk", Category: "Produits Laitiers", UsageCount: 3},
		{UserID: "lolo", Name: "Bread", Category: "Épicerie", UsageCount: 9},
	}
	for i := range seed {
		if err := s.InsertHistory(ctx, &seed[i]); err != nil {
			t.Fatalf("insert %s: %v", seed[i].Name, err)
		}
	}

	history, err := s.History(ctx, "lulu")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 rows for lulu, got %d", len(history))
	}
	if history[0].Name != "Milk" || history[1].Name != "Mint" {
		t.Errorf("order = [%s, %s], want usage count descending", history[0].Name, history[1].Name)
	}
}
