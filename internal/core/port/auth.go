package port

import (
	"context"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
)

type AuthService interface {
	Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error)
}

// TokenIssuer signs a time-boxed credential carrying the user's identity.
type TokenIssuer interface {
	CreateToken(user domain.User) (token string, expiresAt time.Time, err error)
}
