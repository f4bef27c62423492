package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

type stubTodoRepo struct {
	todos  map[string]*domain.Todo
	nextID int
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[string]*domain.Todo), nextID: 1}
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	created := *t
	created.ID = "todo-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.todos[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, todoID, ownerID string) (*domain.Todo, error) {
	t, ok := r.todos[todoID]
	if !ok || (ownerID != "" && t.OwnerID != ownerID) {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Todo, error) {
	out := make([]domain.Todo, 0)
	for _, t := range r.todos {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTodoRepo) ListAll(_ context.Context) ([]domain.Todo, error) {
	out := make([]domain.Todo, 0)
	for _, t := range r.todos {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTodoRepo) Update(_ context.Context, t *domain.Todo) error {
	existing, ok := r.todos[t.ID]
	if !ok || existing.OwnerID != t.OwnerID {
		return domain.ErrTodoNotFound
	}
	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, todoID, ownerID string) error {
	t, ok := r.todos[todoID]
	if !ok || (ownerID != "" && t.OwnerID != ownerID) {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, todoID)
	return nil
}

type stubCache struct {
	entries       map[string][]domain.Todo
	invalidations []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]domain.Todo)}
}

func (c *stubCache) Get(_ context.Context, ownerID string) ([]domain.Todo, bool, error) {
	todos, ok := c.entries[ownerID]
	return todos, ok, nil
}

func (c *stubCache) Set(_ context.Context, ownerID string, todos []domain.Todo) error {
	c.entries[ownerID] = todos
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, ownerID string) error {
	delete(c.entries, ownerID)
	c.invalidations = append(c.invalidations, ownerID)
	return nil
}

func validInput() ports.TodoInput {
	return ports.TodoInput{Title: "Buy milk", Description: "2% from the corner shop", Priority: 3}
}

func TestTodoService_CreateAndList(t *testing.T) {
	repo := newStubTodoRepo()
	cache := newStubCache()
	svc := NewTodoService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), "alice", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OwnerID != "alice" {
		t.Fatalf("owner not stamped: %+v", created)
	}
	if len(cache.invalidations) != 1 || cache.invalidations[0] != "alice" {
		t.Fatalf("expected cache invalidation for alice, got %v", cache.invalidations)
	}

	todos, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", todos)
	}
}

func TestTodoService_List_OwnershipIsolation(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, newStubCache(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), "alice", validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	todos, err := svc.List(context.Background(), "bob")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("bob must not see alice's todos: %+v", todos)
	}
}

func TestTodoService_List_ServesFromCache(t *testing.T) {
	repo := newStubTodoRepo()
	cache := newStubCache()
	svc := NewTodoService(repo, cache, zerolog.Nop())

	cached := []domain.Todo{{ID: "cached-1", OwnerID: "alice"}}
	cache.entries["alice"] = cached

	todos, err := svc.List(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "cached-1" {
		t.Fatalf("expected cached result, got %+v", todos)
	}
}

func TestTodoService_GetUpdateDelete_NotOwner(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, newStubCache(), zerolog.Nop())

	created, err := svc.Create(context.Background(), "alice", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another user's access to an existing todo must look exactly like a miss.
	if _, err := svc.Get(context.Background(), "bob", created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("get: expected ErrTodoNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "bob", created.ID, validInput()); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("update: expected ErrTodoNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "bob", created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("delete: expected ErrTodoNotFound, got %v", err)
	}

	// The todo is still there for its owner.
	if _, err := svc.Get(context.Background(), "alice", created.ID); err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
}

func TestTodoService_Update(t *testing.T) {
	repo := newStubTodoRepo()
	cache := newStubCache()
	svc := NewTodoService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), "alice", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), "alice", created.ID, ports.TodoInput{
		Title:       "Buy oat milk",
		Description: "the barista kind",
		Priority:    5,
		Complete:    true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Buy oat milk" || !updated.Complete || updated.Priority != 5 {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(cache.invalidations) != 2 {
		t.Fatalf("expected invalidation on update, got %v", cache.invalidations)
	}
}

func TestTodoService_DeleteAny(t *testing.T) {
	repo := newStubTodoRepo()
	cache := newStubCache()
	svc := NewTodoService(repo, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), "alice", validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteAny(context.Background(), created.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), "alice", created.ID); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("todo should be gone, got %v", err)
	}
	// The owner's cache entry was invalidated, not the admin's.
	if cache.invalidations[len(cache.invalidations)-1] != "alice" {
		t.Fatalf("expected invalidation for owner, got %v", cache.invalidations)
	}
}

func TestTodoService_ListAll(t *testing.T) {
	repo := newStubTodoRepo()
	svc := NewTodoService(repo, newStubCache(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), "alice", validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "bob", validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	todos, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
}
