package factory

import (
	"maps"
	"strings"
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasktracker/internal/core/domain"
)

const DefaultPassword = "12345678"

// NewUser builds an unsaved user with unique username and email. The password
// is DefaultPassword unless EncryptedPassword is overridden.
func NewUser(customData ...map[string]any) domain.User {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":        int64(0),
		"UUID":      uuid.New(),
		"Username":  "user_" + suffix,
		"Email":     "user_" + suffix + "@example.com",
		"CreatedAt": now,
		"UpdatedAt": now,
	}

	hasEncryptedPassword := false

	for _, data := range customData {
		if _, exists := data["EncryptedPassword"]; exists {
			hasEncryptedPassword = true
			break
		}
	}

	if !hasEncryptedPassword {
		encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		defaults["EncryptedPassword"] = string(encryptedPassword)
	}

	return fab.New(domain.User{}).Build(merge(defaults, customData))
}

// merge folds overrides onto defaults in order. Build only reads its first
// map, so everything has to arrive in one.
func merge(defaults map[string]any, customData []map[string]any) map[string]any {
	for _, data := range customData {
		maps.Copy(defaults, data)
	}

	return defaults
}
