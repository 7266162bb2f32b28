// Package suggest maintains the per-user product history that feeds
// the add-item suggestion box.
package suggest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mbeaulieu/courses/internal/model"
	"github.com/mbeaulieu/courses/internal/store"
)

const (
	// MinQueryLen is the minimum typed length before suggestions kick in.
	MinQueryLen = 2
	// MaxSuggestions caps the ranked result list.
	MaxSuggestions = 5
)

// Record upserts the (user, name, category) aggregate after an item
// was added or edited. At most one row exists per triple: an existing
// row gets its usage count bumped and last_used refreshed, with each
// descriptive field overwritten only when the incoming value is
// non-empty. The userID is the acting user, not the list owner.
func Record(ctx context.Context, gw store.Gateway, userID string, item model.ShoppingItem) error {
	existing, err := gw.HistoryEntry(ctx, userID, item.Name, item.Category)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	if existing == nil {
		return gw.InsertHistory(ctx, &model.ProductHistory{
			UserID:      userID,
			Name:        item.Name,
			Category:    item.Category,
			Description: item.Description,
			Price:       item.Price,
			Weight:      item.Weight,
			Store:       item.Store,
			Remarks:     item.Remarks,
			UsageCount:  1,
			LastUsed:    now,
		})
	}

	existing.UsageCount++
	existing.LastUsed = now
	if item.Description != "" {
		existing.Description = item.Description
	}
	if item.Price != nil {
		existing.Price = item.Price
	}
	if item.Weight != "" {
		existing.Weight = item.Weight
	}
	if item.Store != "" {
		existing.Store = item.Store
	}
	if item.Remarks != "" {
		existing.Remarks = item.Remarks
	}
	return gw.UpdateHistory(ctx, existing)
}

// Lookup ranks a user's history against a partial product name.
// Queries shorter than MinQueryLen return nothing. Matching is a
// case-insensitive substring test; results sort by usage count
// descending with last_used descending as the tie-breaker, capped at
// MaxSuggestions.
func Lookup(history []model.ProductHistory, query string) []model.ProductHistory {
	if utf8.RuneCountInString(query) < MinQueryLen {
		return nil
	}

	needle := strings.ToLower(query)
	var matches []model.ProductHistory
	for _, h := range history {
		if strings.Contains(strings.ToLower(h.Name), needle) {
			matches = append(matches, h)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].UsageCount != matches[j].UsageCount {
			return matches[i].UsageCount > matches[j].UsageCount
		}
		return matches[i].LastUsed.After(matches[j].LastUsed)
	})

	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	return matches
}
