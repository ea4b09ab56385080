package port

import (
	"context"

	"tasktracker/internal/core/domain"
)

type TodoRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.TodoItem, error)
	GetByID(ctx context.Context, ownerID int64, id int64) (domain.TodoItem, error)
	Create(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	Update(ctx context.Context, item domain.TodoItem) (domain.TodoItem, error)
	Delete(ctx context.Context, ownerID int64, id int64) error
}

// TodoInput is a create/update write after request normalization. Status and
// IsComplete are both optional; the service derives one from the other.
type TodoInput struct {
	Name       string
	Status     *domain.TodoStatus
	IsComplete *bool
	CategoryID *int64
}

type TodoService interface {
	List(ctx context.Context, callerID int64) ([]domain.TodoItem, error)
	Get(ctx context.Context, callerID int64, id int64) (domain.TodoItem, error)
	Create(ctx context.Context, callerID int64, input TodoInput) (domain.TodoItem, error)
	Update(ctx context.Context, callerID int64, id int64, bodyID int64, input TodoInput) (domain.TodoItem, error)
	UpdateStatus(ctx context.Context, callerID int64, id int64, status domain.TodoStatus) (domain.TodoItem, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}
