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

var todoColumns = []string{
	"t.id", "t.name", "t.status", "t.user_id", "t.category_id", "t.version", "t.created_at", "t.updated_at",
	"c.name",
}

type TodoRepository struct {
	db *database.DB
}

func NewTodoRepository(db *database.DB) port.TodoRepository {
	return &TodoRepository{db: db}
}

func (tr *TodoRepository) selectItems() sq.SelectBuilder {
	return tr.db.QueryBuilder.Select(todoColumns...).
		From("todo_items t").
		LeftJoin("categories c ON c.id = t.category_id")
}

func (tr *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoItem, error) {
	statement, args, err := tr.selectItems().
		Where(sq.Eq{"t.user_id": ownerID}).
		OrderBy("t.id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, statement, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	items := []domain.TodoItem{}

	for rows.Next() {
		item, err := scanTodo(rows)

		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (tr *TodoRepository) GetByID(ctx context.Context, ownerID int64, id int64) (domain.TodoItem, error) {
	statement, args, err := tr.selectItems().
		Where(sq.Eq{"t.id": id, "t.user_id": ownerID}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.TodoItem{}, err
	}

	item, err := scanTodo(tr.db.QueryRowContext(ctx, statement, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.TodoItem{}, domain.ErrNotFound
	}

	return item, err
}

func (tr *TodoRepository) Create(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	now := time.Now().UTC()

	statement, args, err := tr.db.QueryBuilder.Insert("todo_items").
		Columns("name", "status", "user_id", "category_id", "version", "created_at", "updated_at").
		Values(item.Name, int(item.Status), item.OwnerID, item.CategoryID, 1, now, now).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.TodoItem{}, err
	}

	var id int64
	err = tr.db.QueryRowContext(ctx, statement, args...).Scan(&id)

	if database.IsForeignKeyViolation(err) {
		return domain.TodoItem{}, categoryReferenceError()
	}

	if err != nil {
		return domain.TodoItem{}, err
	}

	return tr.GetByID(ctx, item.OwnerID, id)
}

// Update persists name, status and category guarded by the version the item
// was read with. A stale version yields domain.ErrConcurrentUpdate.
func (tr *TodoRepository) Update(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error) {
	statement, args, err := tr.db.QueryBuilder.Update("todo_items").
		Set("name", item.Name).
		Set("status", int(item.Status)).
		Set("category_id", item.CategoryID).
		Set("version", item.Version+1).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": item.ID, "user_id": item.OwnerID, "version": item.Version}).
		ToSql()

	if err != nil {
		return domain.TodoItem{}, err
	}

	err = execOne(ctx, tr.db, statement, args, domain.ErrConcurrentUpdate)

	if database.IsForeignKeyViolation(err) {
		return domain.TodoItem{}, categoryReferenceError()
	}

	if err != nil {
		return domain.TodoItem{}, err
	}

	return tr.GetByID(ctx, item.OwnerID, item.ID)
}

func (tr *TodoRepository) Delete(ctx context.Context, ownerID int64, id int64) error {
	statement, args, err := tr.db.QueryBuilder.Delete("todo_items").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()

	if err != nil {
		return err
	}

	return execOne(ctx, tr.db, statement, args, domain.ErrNotFound)
}

func scanTodo(row rowScanner) (domain.TodoItem, error) {
	var (
		item         domain.TodoItem
		status       int
		categoryID   sql.NullInt64
		categoryName sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.Name,
		&status,
		&item.OwnerID,
		&categoryID,
		&item.Version,
		&item.CreatedAt,
		&item.UpdatedAt,
		&categoryName,
	)

	if err != nil {
		return domain.TodoItem{}, err
	}

	item.Status = domain.TodoStatus(status)

	if categoryID.Valid {
		id := categoryID.Int64
		item.CategoryID = &id

		if categoryName.Valid {
			item.Category = &domain.CategorySummary{ID: id, Name: categoryName.String}
		}
	}

	return item, nil
}

// categoryReferenceError covers the category disappearing between the
// service check and the write.
func categoryReferenceError() error {
	return domain.InvalidInput("categoryId", "category not found or not owned")
}
