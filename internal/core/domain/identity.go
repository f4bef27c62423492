package domain

import "errors"

// ErrUnauthenticated covers every token rejection: missing, malformed,
// mis-signed, expired, or signed-but-incomplete. Callers must not expose
// which check failed.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the request-scoped result of validating a token. It is built
// once per request by the auth middleware and is the sole basis for every
// ownership filter downstream.
type Identity struct {
	Username string
	UserID   string
	Role     string
}
