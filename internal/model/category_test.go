package model

import "testing"

func TestIsBuiltinCategory(t *testing.T) {
	if !IsBuiltinCategory("Épicerie") {
		t.Error("Épicerie is built-in")
	}
	if IsBuiltinCategory("épicerie") {
		t.Error("matching is case-sensitive")
	}
	if IsBuiltinCategory("Boissons") {
		t.Error("Boissons is not built-in")
	}
}

func TestCategoryExists(t *testing.T) {
	custom := []CustomCategory{{ID: "c1", Name: "Boissons"}}

	if !CategoryExists("Autres", custom) {
		t.Error("built-in should exist")
	}
	if !CategoryExists("Boissons", custom) {
		t.Error("custom should exist")
	}
	if CategoryExists("Jardinage", custom) {
		t.Error("unknown category should not exist")
	}
	if CategoryExists("Boissons", nil) {
		t.Error("custom category requires the custom list")
	}
}

func TestBuiltinCategoryCount(t *testing.T) {
	if len(BuiltinCategories) != 8 {
		t.Errorf("builtin count = %d, want 8", len(BuiltinCategories))
	}
}
