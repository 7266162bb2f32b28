// Package aggregate derives grouped, filtered, and statistical views
// from the raw item set. Everything here is a pure function of its
// inputs so views recompute cheaply on every change.
package aggregate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mbeaulieu/courses/internal/model"
)

// AllItemsGroup names the single group used when category grouping is
// off.
const AllItemsGroup = "Tous les articles"

// Group is one displayed section of the list.
type Group struct {
	Category string               `json:"category"`
	Items    []model.ShoppingItem `json:"items"`
}

// CategoryStat reports spend and volume for one built-in category.
type CategoryStat struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	TotalSpent string `json:"total_spent"`
}

// Summary carries the derived statistics for one user's list.
type Summary struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	CompletionRate float64        `json:"completion_rate"`
	Categories     []CategoryStat `json:"categories"`
}

// OwnerItems narrows the full item set to one list.
func OwnerItems(items []model.ShoppingItem, ownerID string) []model.ShoppingItem {
	var out []model.ShoppingItem
	for _, item := range items {
		if item.UserID == ownerID {
			out = append(out, item)
		}
	}
	return out
}

// FilterByName keeps items whose name contains term,
// case-insensitively. An empty term keeps everything.
func FilterByName(items []model.ShoppingItem, term string) []model.ShoppingItem {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)
	var out []model.ShoppingItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// GroupItems partitions items for display. With grouping on, groups
// follow the built-in category order and empty groups are dropped;
// custom categories never form groups of their own. With grouping
// off, a single group holds everything. Within a group, incomplete
// items come before completed ones, otherwise the incoming order is
// preserved.
func GroupItems(items []model.ShoppingItem, byCategory bool) []Group {
	if !byCategory {
		return []Group{{Category: AllItemsGroup, Items: sortIncompleteFirst(items)}}
	}

	var groups []Group
	for _, category := range model.BuiltinCategories {
		var members []model.ShoppingItem
		for _, item := range items {
			if item.Category == category {
				members = append(members, item)
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Category: category, Items: sortIncompleteFirst(members)})
		}
	}
	return groups
}

// Stats derives the completion rate and per-category spend for a
// user's items (unfiltered by search). Only built-in categories with
// at least one item appear.
func Stats(items []model.ShoppingItem) Summary {
	s := Summary{Total: len(items)}
	for _, item := range items {
		if item.Completed {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}

	for _, category := range model.BuiltinCategories {
		var count int
		var total float64
		for _, item := range items {
			if item.Category != category {
				continue
			}
			count++
			if item.Price != nil {
				total += *item.Price
			}
		}
		if count > 0 {
			s.Categories = append(s.Categories, CategoryStat{
				Category:   category,
				Count:      count,
				TotalSpent: strconv.FormatFloat(total, 'f', 2, 64),
			})
		}
	}
	return s
}

func sortIncompleteFirst(items []model.ShoppingItem) []model.ShoppingItem {
	sorted := make([]model.ShoppingItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return !sorted[i].Completed && sorted[j].Completed
	})
	return sorted
}
