package ports

import "github.com/taskvault/todo-api/internal/core/domain"

// TokenService issues and validates signed, time-limited identity tokens.
// Both operations are pure in-memory computations.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Validate checks signature, algorithm, and expiry, then materializes the
	// identity from the claims. Every failure wraps domain.ErrUnauthenticated;
	// the underlying cause is kept for internal logging only.
	Validate(token string) (*domain.Identity, error)
}

// PasswordHasher produces salted one-way digests of plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash. A malformed
	// hash fails closed (false).
	Verify(plaintext, hash string) bool
}
