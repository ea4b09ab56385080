package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                int64
	UUID              uuid.UUID
	Username          string `validate:"required,min=2,max=100"`
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
