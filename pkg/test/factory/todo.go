package factory

import (
	"strings"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
)

func uniqueName(prefix string) string {
	return prefix + " " + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewCategory builds an unsaved category owned by ownerID.
func NewCategory(ownerID int64, customData ...map[string]any) domain.Category {
	defaults := map[string]any{
		"ID":      int64(0),
		"Name":    uniqueName("Category"),
		"OwnerID": ownerID,
		"Version": int64(1),
	}

	return fab.New(domain.Category{}).Build(merge(defaults, customData))
}

// NewTodoItem builds an unsaved, uncategorized item owned by ownerID. Pass
// categoryID to attach it; non-positive values leave it without category.
func NewTodoItem(ownerID int64, categoryID int64, customData ...map[string]any) domain.TodoItem {
	defaults := map[string]any{
		"ID":      int64(0),
		"Name":    uniqueName("Todo"),
		"OwnerID": ownerID,
		"Status":  domain.TodoStatusNotStarted,
		"Version": int64(1),
	}

	item := fab.New(domain.TodoItem{}).Build(merge(defaults, customData))

	item.CategoryID = domain.NormalizeCategoryID(&categoryID)
	item.Category = nil

	if !item.Status.IsValid() {
		item.Status = domain.TodoStatusNotStarted
	}

	return item
}
