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

type CategoryService struct {
	repo     port.CategoryRepository
	recorder port.OperationRecorder
}

func NewCategoryService(repo port.CategoryRepository, recorder port.OperationRecorder) *CategoryService {
	if recorder == nil {
		recorder = NoopRecorder{}
	}

	return &CategoryService{repo: repo, recorder: recorder}
}

func (cs *CategoryService) List(ctx context.Context, callerID int64) ([]domain.Category, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.category.List", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
	})
	defer span.End()

	categories, err := cs.repo.ListByOwner(ctx, callerID)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	return categories, nil
}

func (cs *CategoryService) Get(ctx context.Context, callerID int64, id int64) (domain.Category, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.category.Get", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("category.id", id),
	})
	defer span.End()

	category, err := cs.repo.GetByID(ctx, callerID, id)

	if errors.Is(err, domain.ErrNotFound) {
		return domain.Category{}, categoryNotFound()
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Category{}, err
	}

	// The store already filters by owner; this keeps the predicate uniform.
	if !domain.BelongsTo(category, callerID) {
		return domain.Category{}, categoryNotFound()
	}

	return category, nil
}

func (cs *CategoryService) Create(ctx context.Context, callerID int64, name string) (domain.Category, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.category.Create", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
	})
	defer span.End()

	name, err := domain.ValidateCategoryName(name)

	if err != nil {
		return domain.Category{}, err
	}

	exists, err := cs.repo.ExistsByName(ctx, callerID, name)

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Category{}, err
	}

	if exists {
		return domain.Category{}, domain.Conflict("name", "category with this name already exists")
	}

	category, err := cs.repo.Create(ctx, domain.Category{
		Name:    name,
		OwnerID: callerID,
	})

	if err != nil {
		tracing.AddSpanError(span, err)
		otelzap.Ctx(ctx).Error("Category#Create repository failed", zap.Error(err), zap.Int64("user_id", callerID))
		return domain.Category{}, err
	}

	cs.recorder.RecordOperation(ctx, "category", "create")

	return category, nil
}

// Update renames in place. There is no sibling lookup as in Create; the
// store's per-owner name key rejects a clash with Conflict.
func (cs *CategoryService) Update(ctx context.Context, callerID int64, id int64, name string) (domain.Category, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "service.category.Update", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("category.id", id),
	})
	defer span.End()

	category, err := cs.Get(ctx, callerID, id)

	if err != nil {
		return domain.Category{}, err
	}

	name, err = domain.ValidateCategoryName(name)

	if err != nil {
		return domain.Category{}, err
	}

	category.Name = name

	updated, err := cs.repo.Update(ctx, category)

	if errors.Is(err, domain.ErrConcurrentUpdate) {
		return domain.Category{}, cs.resolveStale(ctx, callerID, id)
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Category{}, err
	}

	cs.recorder.RecordOperation(ctx, "category", "update")

	return updated, nil
}

func (cs *CategoryService) Delete(ctx context.Context, callerID int64, id int64) error {
	ctx, span := tracing.CreateChildSpan(ctx, "service.category.Delete", []attribute.KeyValue{
		attribute.Int64("user.id", callerID),
		attribute.Int64("category.id", id),
	})
	defer span.End()

	if _, err := cs.Get(ctx, callerID, id); err != nil {
		return err
	}

	count, err := cs.repo.CountItems(ctx, id)

	if err != nil {
		tracing.AddSpanError(span, err)
		return err
	}

	if count > 0 {
		return hasDependents()
	}

	err = cs.repo.DeleteUnreferenced(ctx, callerID, id)

	if errors.Is(err, domain.ErrNotFound) {
		// Nothing was removed: either the category vanished or an item now
		// references it.
		if _, getErr := cs.Get(ctx, callerID, id); getErr != nil {
			return getErr
		}

		return hasDependents()
	}

	if err != nil {
		tracing.AddSpanError(span, err)
		return err
	}

	cs.recorder.RecordOperation(ctx, "category", "delete")

	return nil
}

func (cs *CategoryService) resolveStale(ctx context.Context, callerID int64, id int64) error {
	if _, err := cs.Get(ctx, callerID, id); err != nil {
		return err
	}

	return domain.ConcurrentUpdate("category", "category was modified concurrently, retry the request")
}

func categoryNotFound() error {
	return domain.NotFound("category", "category not found")
}

func hasDependents() error {
	return domain.Conflict("category", "cannot delete: has dependent items")
}
