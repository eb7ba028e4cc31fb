package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/news-service/internal/domain"
	apperrors "github.com/spec-kit/news-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, resolved from a verified
// bearer token. It lives for one request and is never persisted.
type Principal struct {
	ID   string
	Role domain.Role
}

// AuthMiddleware validates bearer tokens and attaches principals to the
// request context. It is stateless: validity is solely a function of the
// token's signature and expiry, no storage is consulted.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewMissingToken()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewMissingToken()
	}

	principal, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return err
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
