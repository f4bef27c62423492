package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

type TodoService struct {
	repo   ports.TodoRepository
	cache  ports.TodoCache
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, cache ports.TodoCache, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, cache: cache, logger: logger}
}

// List returns the caller's todos, serving from the cache when possible.
// Cache failures are logged and ignored; the repository is the source of truth.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	if s.cache != nil {
		todos, ok, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("todo cache read failed")
		} else if ok {
			return todos, nil
		}
	}

	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, todos); err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("todo cache write failed")
		}
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, todoID string) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, todoID, ownerID)
}

func (s *TodoService) Create(ctx context.Context, ownerID string, input ports.TodoInput) (*domain.Todo, error) {
	now := time.Now().UTC()
	todo := &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	s.logger.Info().Str("todo_id", created.ID).Str("owner_id", ownerID).Msg("todo created")
	return created, nil
}

// Update overwrites the writable fields of an owned todo. A todo that does
// not exist or belongs to another owner surfaces as ErrTodoNotFound.
func (s *TodoService) Update(ctx context.Context, ownerID, todoID string, input ports.TodoInput) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, todoID, ownerID)
	if err != nil {
		return nil, err
	}

	todo.Title = input.Title
	todo.Description = input.Description
	todo.Priority = input.Priority
	todo.Complete = input.Complete
	todo.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, todoID string) error {
	if err := s.repo.Delete(ctx, todoID, ownerID); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// ListAll returns every todo regardless of owner. Admin use only; the RBAC
// middleware gates the route.
func (s *TodoService) ListAll(ctx context.Context) ([]domain.Todo, error) {
	return s.repo.ListAll(ctx)
}

// DeleteAny deletes a todo regardless of owner. Admin use only.
func (s *TodoService) DeleteAny(ctx context.Context, todoID string) error {
	todo, err := s.repo.FindByID(ctx, todoID, "")
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, todoID, ""); err != nil {
		return err
	}
	s.invalidate(ctx, todo.OwnerID)
	return nil
}

func (s *TodoService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("todo cache invalidation failed")
	}
}
