package port

import (
	"context"

	"tasktracker/internal/core/domain"
)

type CategoryRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Category, error)
	GetByID(ctx context.Context, ownerID int64, id int64) (domain.Category, error)
	ExistsByName(ctx context.Context, ownerID int64, name string) (bool, error)
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	CountItems(ctx context.Context, id int64) (int, error)
	DeleteUnreferenced(ctx context.Context, ownerID int64, id int64) error
}

type CategoryService interface {
	List(ctx context.Context, callerID int64) ([]domain.Category, error)
	Get(ctx context.Context, callerID int64, id int64) (domain.Category, error)
	Create(ctx context.Context, callerID int64, name string) (domain.Category, error)
	Update(ctx context.Context, callerID int64, id int64, name string) (domain.Category, error)
	Delete(ctx context.Context, callerID int64, id int64) error
}
