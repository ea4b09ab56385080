package service_test

import (
	"context"
	"sync"
	"testing"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/repository"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/test/factory"
)

type spyRecorder struct {
	mu         sync.Mutex
	operations []string
}

func (r *spyRecorder) RecordOperation(ctx context.Context, entity string, operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations = append(r.operations, entity+"."+operation)
}

func (r *spyRecorder) Operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.operations...)
}

func createUser(t *testing.T, db *database.DB) domain.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).Create(context.Background(), factory.NewUser())

	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	return user
}

func ptr[T any](v T) *T {
	return &v
}
