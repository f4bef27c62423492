package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// TodoInput carries the writable fields of a todo. Field bounds are enforced
// at the HTTP boundary before the service is called.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService defines use-case operations for todos. Every operation except
// the admin variants is scoped to ownerID; a todo belonging to someone else
// is reported as domain.ErrTodoNotFound, never as a permission failure.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Get(ctx context.Context, ownerID, todoID string) (*domain.Todo, error)
	Create(ctx context.Context, ownerID string, input TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, todoID string, input TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, todoID string) error

	// Admin operations: no owner filter.
	ListAll(ctx context.Context) ([]domain.Todo, error)
	DeleteAny(ctx context.Context, todoID string) error
}
