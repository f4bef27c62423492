package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskvault/todo-api/internal/core/domain"
	"github.com/taskvault/todo-api/internal/core/ports"
)

type recordingRepo struct {
	mu    sync.Mutex
	calls []ports.LoginEvent
	done  chan struct{}
	want  int
}

func newRecordingRepo(want int) *recordingRepo {
	return &recordingRepo{done: make(chan struct{}), want: want}
}

func (r *recordingRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, nil
}

func (r *recordingRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingRepo) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *recordingRepo) RecordLogin(_ context.Context, username string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ports.LoginEvent{Username: username, At: at})
	if len(r.calls) == r.want {
		close(r.done)
	}
	return nil
}

func TestDispatcher_ProcessesEvents(t *testing.T) {
	repo := newRecordingRepo(3)
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	now := time.Now().UTC()
	d.Enqueue(ports.LoginEvent{Username: "alice", At: now})
	d.Enqueue(ports.LoginEvent{Username: "bob", At: now})
	d.Enqueue(ports.LoginEvent{Username: "carol", At: now})

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	repo := newRecordingRepo(5)
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		d.Enqueue(ports.LoginEvent{Username: "alice", At: base.Add(time.Duration(i) * time.Second)})
	}

	select {
	case <-repo.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i := 1; i < len(repo.calls); i++ {
		if repo.calls[i].At.Before(repo.calls[i-1].At) {
			t.Fatalf("events for the same user processed out of order: %+v", repo.calls)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingRepo(0), zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
