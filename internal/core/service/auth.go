package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/model/request"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/util"
)

type AuthService struct {
	repo port.UserRepository
}

func NewAuthService(repo port.UserRepository) *AuthService {
	return &AuthService{repo}
}

func (as *AuthService) Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return nil, domain.InvalidInput("request", "all fields are required")
	}

	if _, err := as.repo.GetByUsername(ctx, username); err == nil {
		return nil, domain.Conflict("username", "user with this username already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := as.repo.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("email", "user with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		otelzap.Ctx(ctx).Error("Auth#Registration", zap.String("step", "encrypt_password"), zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()

	user := domain.User{
		UUID:              uuid.New(),
		Username:          username,
		Email:             email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	savedUser, err := as.repo.Create(ctx, user)

	if err != nil {
		return nil, err
	}

	return &savedUser, nil
}

func (as *AuthService) Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error) {
	user, err := as.repo.GetByUsername(ctx, strings.TrimSpace(req.Username))

	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Unauthenticated("invalid username or password")
	}

	if err != nil {
		otelzap.Ctx(ctx).Error("Auth#Authenticate", zap.String("step", "get_by_username"), zap.Error(err))
		return nil, err
	}

	if err := util.ComparePassword(req.Password, user.EncryptedPassword); err != nil {
		otelzap.Ctx(ctx).Info("Auth#Authenticate", zap.String("step", "compare_password"), zap.Int64("user_id", user.ID))
		return nil, domain.Unauthenticated("invalid username or password")
	}

	return &user, nil
}
