package ports

import (
	"context"

	"github.com/taskvault/todo-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account. Password is
// the plaintext supplied by the client; it is hashed before anything is
// persisted and never accepted pre-hashed.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Password    string
	Role        string
	PhoneNumber string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the credentials and returns a signed access token plus
	// the authenticated user. Unknown username, wrong password, and inactive
	// account all fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
