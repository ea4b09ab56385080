package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
)

var categoryColumns = []string{"id", "name", "user_id", "version", "created_at", "updated_at"}

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) port.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (cr *CategoryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	statement, args, err := cr.db.QueryBuilder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := cr.db.QueryContext(ctx, statement, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	categories := []domain.Category{}

	for rows.Next() {
		category, err := scanCategory(rows)

		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (cr *CategoryRepository) GetByID(ctx context.Context, ownerID int64, id int64) (domain.Category, error) {
	statement, args, err := cr.db.QueryBuilder.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	category, err := scanCategory(cr.db.QueryRowContext(ctx, statement, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.ErrNotFound
	}

	return category, err
}

// ExistsByName compares trimmed names case-insensitively within one owner.
// The key is folded in Go, so SQLite's ASCII-only LOWER never takes part.
func (cr *CategoryRepository) ExistsByName(ctx context.Context, ownerID int64, name string) (bool, error) {
	statement, args, err := cr.db.QueryBuilder.Select("COUNT(*)").
		From("categories").
		Where(sq.Eq{"user_id": ownerID, "name_key": domain.NameKey(name)}).
		ToSql()

	if err != nil {
		return false, err
	}

	var count int

	if err := cr.db.QueryRowContext(ctx, statement, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (cr *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	now := time.Now().UTC()

	category.Version = 1
	category.CreatedAt = now
	category.UpdatedAt = now

	statement, args, err := cr.db.QueryBuilder.Insert("categories").
		Columns("name", "name_key", "user_id", "version", "created_at", "updated_at").
		Values(category.Name, domain.NameKey(category.Name), category.OwnerID, category.Version, category.CreatedAt, category.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	err = cr.db.QueryRowContext(ctx, statement, args...).Scan(&category.ID)

	if database.IsUniqueViolation(err) {
		return domain.Category{}, duplicateName()
	}

	if err != nil {
		return domain.Category{}, err
	}

	return category, nil
}

// Update writes the name only if the row still carries the version read by
// the caller.
func (cr *CategoryRepository) Update(ctx context.Context, category domain.Category) (domain.Category, error) {
	now := time.Now().UTC()

	statement, args, err := cr.db.QueryBuilder.Update("categories").
		Set("name", category.Name).
		Set("name_key", domain.NameKey(category.Name)).
		Set("version", category.Version+1).
		Set("updated_at", now).
		Where(sq.Eq{"id": category.ID, "user_id": category.OwnerID, "version": category.Version}).
		ToSql()

	if err != nil {
		return domain.Category{}, err
	}

	err = execOne(ctx, cr.db, statement, args, domain.ErrConcurrentUpdate)

	if database.IsUniqueViolation(err) {
		return domain.Category{}, duplicateName()
	}

	if err != nil {
		return domain.Category{}, err
	}

	category.Version++
	category.UpdatedAt = now

	return category, nil
}

func (cr *CategoryRepository) CountItems(ctx context.Context, id int64) (int, error) {
	statement, args, err := cr.db.QueryBuilder.Select("COUNT(*)").
		From("todo_items").
		Where(sq.Eq{"category_id": id}).
		ToSql()

	if err != nil {
		return 0, err
	}

	var count int
	err = cr.db.QueryRowContext(ctx, statement, args...).Scan(&count)

	return count, err
}

// DeleteUnreferenced removes the category in one statement that also checks
// no item points at it. Zero affected rows is reported as domain.ErrNotFound.
func (cr *CategoryRepository) DeleteUnreferenced(ctx context.Context, ownerID int64, id int64) error {
	statement, args, err := cr.db.QueryBuilder.Delete("categories").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		Where("NOT EXISTS (SELECT 1 FROM todo_items WHERE todo_items.category_id = categories.id)").
		ToSql()

	if err != nil {
		return err
	}

	return execOne(ctx, cr.db, statement, args, domain.ErrNotFound)
}

func duplicateName() error {
	return domain.Conflict("name", "category with this name already exists")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var category domain.Category

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.OwnerID,
		&category.Version,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	return category, err
}

// execOne runs a mutating statement and returns missing when nothing matched.
func execOne(ctx context.Context, db *database.DB, statement string, args []any, missing error) error {
	result, err := db.ExecContext(ctx, statement, args...)

	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return missing
	}

	return nil
}
