package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
)

var userColumns = []string{"id", "uuid", "username", "email", "encrypted_password", "created_at", "updated_at"}

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return ur.getBy(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.getBy(ctx, sq.Expr("LOWER(email) = LOWER(?)", email))
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("uuid", "username", "email", "encrypted_password", "created_at", "updated_at").
		Values(user.UUID.String(), user.Username, user.Email, user.EncryptedPassword, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id")

	statement, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	err = ur.db.QueryRowContext(ctx, statement, args...).Scan(&user.ID)

	if database.IsUniqueViolation(err) {
		return domain.User{}, domain.Conflict("username", "username or email already registered")
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) getBy(ctx context.Context, predicate sq.Sqlizer) (domain.User, error) {
	statement, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(predicate).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var (
		user   domain.User
		rawUID string
	)

	err = ur.db.QueryRowContext(ctx, statement, args...).Scan(
		&user.ID,
		&rawUID,
		&user.Username,
		&user.Email,
		&user.EncryptedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	user.UUID, err = uuid.Parse(rawUID)

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}
