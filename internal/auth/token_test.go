package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

func signToken(t *testing.T, secret string, userID string, role domain.Role, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	return apperrors.ToDomainError(err).Code
}

func TestParseTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	token, exp, err := tm.GenerateToken("user-1", domain.RolePublisher)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	principal, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.ID != "user-1" {
		t.Fatalf("expected subject user-1, got %s", principal.ID)
	}
	if principal.Role != domain.RolePublisher {
		t.Fatalf("expected publisher role, got %s", principal.Role)
	}
}

func TestParseTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token := signToken(t, "secret", "user-1", domain.RoleReader, time.Now().Add(-time.Minute))

	principal, err := tm.ParseToken(token)
	if code := errorCode(t, err); code != "TOKEN_EXPIRED" {
		t.Fatalf("expected TOKEN_EXPIRED, got %s", code)
	}
	if principal != nil {
		t.Fatalf("expected no principal")
	}
}

func TestParseTokenWrongKey(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token := signToken(t, "other-secret", "user-1", domain.RoleReader, time.Now().Add(time.Hour))

	if _, err := tm.ParseToken(token); errorCode(t, err) != "INVALID_SIGNATURE" {
		t.Fatalf("expected INVALID_SIGNATURE, got %v", err)
	}
}

func TestParseTokenTamperedAndExpired(t *testing.T) {
	// Signature is checked before expiry: a tampered token with a past
	// expiry must still report the signature failure.
	tm := NewTokenManager("secret", 60)
	token := signToken(t, "other-secret", "user-1", domain.RoleReader, time.Now().Add(-time.Hour))

	if _, err := tm.ParseToken(token); errorCode(t, err) != "INVALID_SIGNATURE" {
		t.Fatalf("expected INVALID_SIGNATURE, got %v", err)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	if _, err := tm.ParseToken("not-a-token"); errorCode(t, err) != "INVALID_SIGNATURE" {
		t.Fatalf("expected INVALID_SIGNATURE, got %v", err)
	}
}

func TestParseTokenUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	token := signToken(t, "secret", "user-1", domain.Role("SUPERUSER"), time.Now().Add(time.Hour))

	if _, err := tm.ParseToken(token); errorCode(t, err) != "INVALID_SIGNATURE" {
		t.Fatalf("expected INVALID_SIGNATURE, got %v", err)
	}
}
