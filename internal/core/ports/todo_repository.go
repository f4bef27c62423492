package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
// Where ownerID is a parameter, a non-empty value adds an owner_id filter to
// the query; empty means no filter (admin paths only).
type TodoRepository interface {
	Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, todoID, ownerID string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	ListAll(ctx context.Context) ([]domain.Todo, error)
	// Update persists the writable fields of t, filtered by t.ID and t.OwnerID.
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, todoID, ownerID string) error
}

// TodoCache is a best-effort per-owner cache of list results. A miss or a
// cache error is never fatal; callers fall through to the repository.
type TodoCache interface {
	Get(ctx context.Context, ownerID string) ([]domain.Todo, bool, error)
	Set(ctx context.Context, ownerID string, todos []domain.Todo) error
	Invalidate(ctx context.Context, ownerID string) error
}
