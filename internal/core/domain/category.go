package domain

import (
	"strings"
	"time"
)

const CategoryNameMaxLength = 100

type Category struct {
	ID        int64
	Name      string
	OwnerID   int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) Owner() int64 {
	return c.OwnerID
}

// CategorySummary is the flat projection joined onto todo items.
type CategorySummary struct {
	ID   int64
	Name string
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NameKey is the comparison key for per-owner category name uniqueness.
func NameKey(name string) string {
	return strings.ToLower(NormalizeName(name))
}

func ValidateCategoryName(name string) (string, error) {
	name = NormalizeName(name)

	if name == "" {
		return "", InvalidInput("name", "category name is required")
	}

	if len([]rune(name)) > CategoryNameMaxLength {
		return "", InvalidInput("name", "category name must be at most 100 characters")
	}

	return name, nil
}
