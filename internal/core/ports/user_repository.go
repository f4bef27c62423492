package ports

import (
	"context"
	"time"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence. Uniqueness
// of username and email is the store's responsibility; Create surfaces a
// violation as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// RecordLogin stamps the user's last_login_at. Called off the request
	// path by the login event dispatcher.
	RecordLogin(ctx context.Context, username string, at time.Time) error
}
