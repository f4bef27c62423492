package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskvault/todo-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "65f0c0ffee0000000000abcd",
		Username: "alice",
		Role:     domain.RoleUser,
		IsActive: true,
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	identity, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if identity.Username != "alice" {
		t.Fatalf("expected subject alice, got %q", identity.Username)
	}
	if identity.UserID != "65f0c0ffee0000000000abcd" {
		t.Fatalf("unexpected user id: %q", identity.UserID)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %q", identity.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Nanosecond)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, err = svc.Validate(token)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if RejectionReason(err) != "expired" {
		t.Fatalf("expected internal reason expired, got %q", RejectionReason(err))
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip one byte in the payload; the signature no longer matches.
	raw := []byte(token)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	if _, err := svc.Validate(string(raw)); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = verifier.Validate(token)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if RejectionReason(err) != "bad_signature" {
		t.Fatalf("expected internal reason bad_signature, got %q", RejectionReason(err))
	}
}

func TestTokenService_AlgorithmMismatch(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// Signed with the right secret but the wrong algorithm.
	claims := tokenClaims{
		UserID: "u1",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for wrong algorithm, got %v", err)
	}
}

func TestTokenService_IncompleteClaims(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// Correctly signed tokens missing the subject, user id, or expiry claim
	// must not resolve to an identity. Without a mandatory exp, a token
	// signed with the server secret would stay valid forever.
	for name, claims := range map[string]tokenClaims{
		"missing expiry": {
			UserID:           "u1",
			Role:             domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		},
		"missing subject": {
			UserID:           "u1",
			Role:             domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		},
		"missing user id": {
			Role: domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		},
	} {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("%s: sign failed: %v", name, err)
		}
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if RejectionReason(err) != "malformed" {
		t.Fatalf("expected internal reason malformed, got %q", RejectionReason(err))
	}
}
