package service

import (
	"context"
	"errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/port"
	"tasktracker/pkg/tracing"
)

type TodoService struct {
	repo       port.TodoRepository
	categories port.CategoryRepository
	recorder   port.OperationRecorder
}

func NewTodoService(repo port.TodoRepository, categories port.CategoryRepository, recorder port.OperationRecorder) *TodoService {
	if recorder == nil {
		recorder = NoopRecorder{}
	}

	return &TodoService{repo: repo, categories: categories, recorder: recorder}
}

func (ts *TodoService) List(ctx context.Context, callerID int64) ([]domain.TodoItem, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.List", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
	})
	defer span.End()

	items, err := ts.repo.ListByOwner(ctx, callerID)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("todo.count", len(items)))

	return items, nil
}

func (ts *TodoService) Get(ctx context.Context, callerID int64, id int64) (domain.TodoItem, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Get", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	item, err := ts.repo.GetByID(ctx, callerID, id)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.TodoItem{}, todoNotFound()
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.TodoItem{}, err
	}

	if !domain.BelongsTo(item, callerID) {
		return domain.TodoItem{}, todoNotFound()
	}

	return item, nil
}

func (ts *TodoService) Create(ctx context.Context, callerID int64, input port.TodoInput) (domain.TodoItem, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Create", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
	})
	defer span.End()

	name, err := domain.ValidateTodoName(input.Name)

	if err != nil {
		return domain.TodoItem{}, err
	}

	status, err := domain.ResolveStatus(input.Status, input.IsComplete, domain.TodoStatusNotStarted)

	if err != nil {
		return domain.TodoItem{}, err
	}

	categoryID, err := ts.resolveCategory(ctx, callerID, input.CategoryID)

	if err != nil {
		return domain.TodoItem{}, err
	}

	item, err := ts.repo.Create(ctx, domain.TodoItem{
		Name:       name,
		Status:     status,
		OwnerID:    callerID,
		CategoryID: categoryID,
	})

	if err != nil {
		tracing.AddSpanError(span, err)
		otelzap.Ctx(ctx).Error("Todo#Create repository failed", zap.Error(err), zap.Int64("user_id", callerID))
		return domain.TodoItem{}, err
	}

	ts.recorder.RecordOperation(ctx, "todo", "create")

	return item, nil
}

// Update replaces name, status and category. bodyID is the id carried in the
// request body and has to match the addressed item.
func (ts *TodoService) Update(ctx context.Context, callerID int64, id int64, bodyID int64, input port.TodoInput) (domain.TodoItem, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Update", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	if bodyID != id {
		return domain.TodoItem{}, domain.Conflict("id", "id in body does not match id in path")
	}

	item, err := ts.Get(ctx, callerID, id)

	if err != nil {
		return domain.TodoItem{}, err
	}

	name, err := domain.ValidateTodoName(input.Name)

	if err != nil {
		return domain.TodoItem{}, err
	}

	status, err := domain.ResolveStatus(input.Status, input.IsComplete, item.Status)

	if err != nil {
		return domain.TodoItem{}, err
	}

	categoryID, err := ts.resolveCategory(ctx, callerID, input.CategoryID)

	if err != nil {
		return domain.TodoItem{}, err
	}

	item.Name = name
	item.SetStatus(status)
	item.CategoryID = categoryID

	return ts.save(ctx, callerID, item, "update")
}

func (ts *TodoService) UpdateStatus(ctx context.Context, callerID int64, id int64, status domain.TodoStatus) (domain.TodoItem, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.UpdateStatus", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("todo.id", id),
		attribute.String("todo.status", status.String()),
	})
	defer span.End()

	status, err := domain.ParseTodoStatus(int(status))

	if err != nil {
		return domain.TodoItem{}, err
	}

	item, err := ts.Get(ctx, callerID, id)

	if err != nil {
		return domain.TodoItem{}, err
	}

	item.SetStatus(status)

	return ts.save(ctx, callerID, item, "update_status")
}

func (ts *TodoService) Delete(ctx context.Context, callerID int64, id int64) error {
	ctx, span := tracing.CreateChildSpan(ctx, "service.todo.Delete", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	if _, err := ts.Get(ctx, callerID, id); err != nil {
		return err
	}

	err := ts.repo.Delete(ctx, callerID, id)

	if errors.Is(err, domain.ErrNotFound) {
		return todoNotFound()
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		return err
	}

	ts.recorder.RecordOperation(ctx, "todo", "delete")

	return nil
}

func (ts *TodoService) save(ctx context.Context, callerID int64, item domain.TodoItem, operation string) (domain.TodoItem, error) {
	updated, err := ts.repo.Update(ctx, item)

	if errors.Is(err, domain.ErrConcurrentUpdate) {
		if _, getErr := ts.Get(ctx, callerID, item.ID); getErr != nil {
			return domain.TodoItem{}, getErr
		}

		return domain.TodoItem{}, domain.ConcurrentUpdate("todo", "todo item was modified concurrently, retry the request")
	}

	if err != nil {
		otelzap.Ctx(ctx).Error("Todo#Update repository failed", zap.Error(err), zap.Int64("todo_id", item.ID))
		return domain.TodoItem{}, err
	}

	ts.recorder.RecordOperation(ctx, "todo", operation)

	return updated, nil
}

// resolveCategory normalizes the reference and checks it belongs to the caller.
func (ts *TodoService) resolveCategory(ctx context.Context, callerID int64, categoryID *int64) (*int64, error) {
	categoryID = domain.NormalizeCategoryID(categoryID)

	if categoryID == nil {
		return nil, nil
	}

	category, err := ts.categories.GetByID(ctx, callerID, *categoryID)

	if errors.Is(err, domain.ErrNotFound) || (err == nil && !domain.BelongsTo(category, callerID)) {
		return nil, domain.InvalidInput("categoryId", "category not found or not owned")
	}

	if err != nil {
		return nil, err
	}

	return categoryID, nil
}

func todoNotFound() error {
	return domain.NotFound("todo", "todo item not found")
}
